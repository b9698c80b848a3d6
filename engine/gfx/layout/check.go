package layout

import "fmt"

// MismatchError reports a shader binding that does not agree with the
// binding sets a pass provides.
type MismatchError struct {
	Group   uint32
	Binding uint32
	Want    string // what the pass provides, empty if nothing
	Got     string // what the shader declares, empty if nothing
}

func (e *MismatchError) Error() string {
	switch {
	case e.Got == "":
		return fmt.Sprintf("binding layout mismatch at @group(%d) @binding(%d): shader does not declare the %s the pass provides", e.Group, e.Binding, e.Want)
	case e.Want == "":
		return fmt.Sprintf("binding layout mismatch at @group(%d) @binding(%d): shader declares %s, pass provides nothing", e.Group, e.Binding, e.Got)
	}
	return fmt.Sprintf("binding layout mismatch at @group(%d) @binding(%d): shader declares %s, pass provides %s", e.Group, e.Binding, e.Got, e.Want)
}

// Check verifies that mod declares exactly the bindings in want, group i of
// want being @group(i). Uniform buffers must also agree on their size. The first disagreement is returned as a *MismatchError.
func Check(mod *Module, want []Group) error {
	declared := map[[2]uint32]Binding{}
	for _, b := range mod.Bindings {
		declared[[2]uint32{b.Group, b.Binding}] = b
	}

	for gi, g := range want {
		for _, e := range g.Entries {
			key := [2]uint32{uint32(gi), e.Binding}
			b, ok := declared[key]
			if !ok {
				return &MismatchError{Group: key[0], Binding: key[1], Want: e.Kind.String()}
			}
			if b.Kind != e.Kind {
				return &MismatchError{Group: key[0], Binding: key[1], Want: e.Kind.String(), Got: describe(b)}
			}
			if e.Kind == UniformBuffer && e.MinSize != 0 && b.Size != e.MinSize {
				return &MismatchError{
					Group:   key[0],
					Binding: key[1],
					Want:    fmt.Sprintf("%s of %d bytes", e.Kind, e.MinSize),
					Got:     fmt.Sprintf("%s of %d bytes", describe(b), b.Size),
				}
			}
			delete(declared, key)
		}
	}

	// Bindings nothing provides. mod.Bindings is sorted, so report the first.
	for _, b := range mod.Bindings {
		if _, ok := declared[[2]uint32{b.Group, b.Binding}]; ok {
			return &MismatchError{Group: b.Group, Binding: b.Binding, Got: describe(b)}
		}
	}
	return nil
}

func describe(b Binding) string {
	if b.Kind == KindUnknown {
		return fmt.Sprintf("%s: %s", b.Name, b.Decl)
	}
	return fmt.Sprintf("%s: %s", b.Name, b.Kind)
}
