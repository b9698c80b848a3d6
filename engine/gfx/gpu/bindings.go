package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hubastard/atlas/engine/gfx/layout"
)

// LayoutEntries converts a binding set description to wgpu layout entries.
func LayoutEntries(g layout.Group) ([]wgpu.BindGroupLayoutEntry, error) {
	out := make([]wgpu.BindGroupLayoutEntry, 0, len(g.Entries))
	for _, e := range g.Entries {
		le := wgpu.BindGroupLayoutEntry{
			Binding:    e.Binding,
			Visibility: stages(e.Visibility),
		}
		switch e.Kind {
		case layout.UniformBuffer:
			le.Buffer = wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: e.MinSize,
			}
		case layout.FilteringSampler:
			le.Sampler = wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering}
		case layout.Texture2D:
			le.Texture = wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			}
		default:
			return nil, fmt.Errorf("gpu: group %q binding %d: unsupported kind %v", g.Label, e.Binding, e.Kind)
		}
		out = append(out, le)
	}
	return out, nil
}

func stages(s layout.Stage) wgpu.ShaderStage {
	var out wgpu.ShaderStage
	if s&layout.StageVertex != 0 {
		out |= wgpu.ShaderStageVertex
	}
	if s&layout.StageFragment != 0 {
		out |= wgpu.ShaderStageFragment
	}
	return out
}

// CreateBindGroupLayout creates the wgpu layout for g.
func CreateBindGroupLayout(dev *wgpu.Device, g layout.Group) (*wgpu.BindGroupLayout, error) {
	entries, err := LayoutEntries(g)
	if err != nil {
		return nil, err
	}
	bgl, err := dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   g.Label + " layout",
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: bind group layout %q: %w", g.Label, err)
	}
	return bgl, nil
}
