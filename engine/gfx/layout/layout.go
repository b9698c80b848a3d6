// Package layout describes binding sets independently of any GPU API, so a
// shader's declared bindings can be checked against what a pass provides.
package layout

import "fmt"

// Kind is the type of resource bound at a slot.
type Kind int

const (
	KindUnknown Kind = iota
	UniformBuffer
	FilteringSampler
	Texture2D
)

func (k Kind) String() string {
	switch k {
	case UniformBuffer:
		return "uniform buffer"
	case FilteringSampler:
		return "sampler"
	case Texture2D:
		return "texture_2d<f32>"
	}
	return "unknown"
}

// Stage is a set of shader stages.
type Stage uint8

const (
	StageVertex Stage = 1 << iota
	StageFragment

	StageNone Stage = 0
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageVertex | StageFragment:
		return "vertex|fragment"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

type Entry struct {
	Binding    uint32
	Kind       Kind
	Visibility Stage
	MinSize    uint64 // uniform buffers only
}

// Group is one binding set. Its index is its position in the pipeline layout.
type Group struct {
	Label   string
	Entries []Entry
}

// Entry returns the entry at binding b.
func (g Group) Entry(b uint32) (Entry, bool) {
	for _, e := range g.Entries {
		if e.Binding == b {
			return e, true
		}
	}
	return Entry{}, false
}

// UniformGroup is a single uniform buffer of the given size at binding 0,
// visible to both stages.
func UniformGroup(label string, size uint64) Group {
	return Group{Label: label, Entries: []Entry{
		{Binding: 0, Kind: UniformBuffer, Visibility: StageVertex | StageFragment, MinSize: size},
	}}
}

// SampledTextureGroup is a filtering sampler at binding 0 and a float 2D
// texture at binding 1, visible to the fragment stage.
func SampledTextureGroup(label string) Group {
	return Group{Label: label, Entries: []Entry{
		{Binding: 0, Kind: FilteringSampler, Visibility: StageFragment},
		{Binding: 1, Kind: Texture2D, Visibility: StageFragment},
	}}
}
