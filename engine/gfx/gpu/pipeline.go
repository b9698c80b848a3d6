package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hubastard/atlas/engine/gfx/shader"
)

// replace writes source color and alpha unchanged.
var replace = wgpu.BlendState{
	Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorZero, Operation: wgpu.BlendOperationAdd},
	Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorZero, Operation: wgpu.BlendOperationAdd},
}

// NewQuadPipeline builds a pipeline for a checked program that synthesizes a
// 4 vertex triangle strip from the vertex index. bgls are the program's
// binding set layouts in group order.
func NewQuadPipeline(dev *wgpu.Device, prog *shader.Program, bgls []*wgpu.BindGroupLayout, color wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	if len(bgls) != len(prog.Groups) {
		return nil, fmt.Errorf("gpu: pipeline %q: %d layouts for %d groups", prog.Name, len(bgls), len(prog.Groups))
	}
	mod, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          prog.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: prog.Source},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: shader module %q: %w", prog.Name, err)
	}
	defer mod.Release()

	pl, err := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            prog.Name + " layout",
		BindGroupLayouts: bgls,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: pipeline layout %q: %w", prog.Name, err)
	}
	defer pl.Release()

	rp, err := dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  prog.Name + " pipeline",
		Layout: pl,
		Vertex: wgpu.VertexState{
			Module:     mod,
			EntryPoint: shader.VertexEntry,
		},
		Fragment: &wgpu.FragmentState{
			Module:     mod,
			EntryPoint: shader.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    color,
				Blend:     &replace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleStrip,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: render pipeline %q: %w", prog.Name, err)
	}
	return rp, nil
}
