package layout

import (
	"fmt"
	"sort"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Binding is a resource variable declared by a shader.
type Binding struct {
	Group, Binding uint32
	Name           string
	Kind           Kind
	Decl           string // declared type name
	Size           uint64 // byte size of uniform buffer contents, 0 otherwise
}

// Module is the binding interface of a WGSL source, with the IR it was
// reflected from.
type Module struct {
	Bindings    []Binding // sorted by group, then binding
	EntryPoints map[string]Stage
	IR          *ir.Module
}

// HasEntryPoint reports whether fn is declared with the given stage attribute.
func (m *Module) HasEntryPoint(fn string, stage Stage) bool {
	return m.EntryPoints[fn] == stage
}

// Groups returns the number of binding sets the module addresses.
func (m *Module) Groups() int {
	n := 0
	for _, b := range m.Bindings {
		if int(b.Group) >= n {
			n = int(b.Group) + 1
		}
	}
	return n
}

// Reflect parses and lowers src with naga and collects its resource
// bindings and entry points. Aliases are resolved and comments ignored by
// the WGSL front end. It does not validate the IR.
func Reflect(src string) (*Module, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, err
	}
	irm, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("lower: %w", err)
	}

	mod := &Module{EntryPoints: map[string]Stage{}, IR: irm}
	seen := map[[2]uint32]string{}
	for _, gv := range irm.GlobalVariables {
		if gv.Binding == nil {
			continue
		}
		key := [2]uint32{gv.Binding.Group, gv.Binding.Binding}
		if other, dup := seen[key]; dup {
			return nil, fmt.Errorf("vars %s and %s both bound at @group(%d) @binding(%d)", other, gv.Name, key[0], key[1])
		}
		seen[key] = gv.Name

		b := Binding{
			Group:   key[0],
			Binding: key[1],
			Name:    gv.Name,
			Kind:    classify(irm, gv),
			Decl:    typeName(irm, gv.Type),
		}
		if b.Kind == UniformBuffer {
			b.Size = uint64(ir.TypeSize(irm, gv.Type))
		}
		mod.Bindings = append(mod.Bindings, b)
	}
	sort.Slice(mod.Bindings, func(i, j int) bool {
		bi, bj := mod.Bindings[i], mod.Bindings[j]
		if bi.Group != bj.Group {
			return bi.Group < bj.Group
		}
		return bi.Binding < bj.Binding
	})

	for _, ep := range irm.EntryPoints {
		switch ep.Stage {
		case ir.StageVertex:
			mod.EntryPoints[ep.Name] = StageVertex
		case ir.StageFragment:
			mod.EntryPoints[ep.Name] = StageFragment
		default:
			mod.EntryPoints[ep.Name] = StageNone
		}
	}
	return mod, nil
}

func classify(m *ir.Module, gv ir.GlobalVariable) Kind {
	if int(gv.Type) >= len(m.Types) {
		return KindUnknown
	}
	switch gv.Space {
	case ir.SpaceUniform:
		return UniformBuffer
	case ir.SpaceHandle:
	default:
		return KindUnknown
	}
	switch t := m.Types[gv.Type].Inner.(type) {
	case ir.SamplerType:
		if !t.Comparison {
			return FilteringSampler
		}
	case ir.ImageType:
		if t.Dim == ir.Dim2D && !t.Arrayed && !t.Multisampled &&
			t.Class == ir.ImageClassSampled && t.SampledKind == ir.ScalarFloat {
			return Texture2D
		}
	}
	return KindUnknown
}

func typeName(m *ir.Module, h ir.TypeHandle) string {
	if int(h) >= len(m.Types) {
		return "?"
	}
	t := m.Types[h]
	if t.Name != "" {
		return t.Name
	}
	switch in := t.Inner.(type) {
	case ir.SamplerType:
		if in.Comparison {
			return "sampler_comparison"
		}
		return "sampler"
	case ir.ImageType:
		switch in.Class {
		case ir.ImageClassDepth:
			return "depth texture"
		case ir.ImageClassStorage:
			return "storage texture"
		}
		return "texture"
	case ir.StructType:
		return "struct"
	}
	return fmt.Sprintf("%T", t.Inner)
}
