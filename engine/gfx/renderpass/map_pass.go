package renderpass

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/db47h/ofs"
	"github.com/hubastard/atlas/engine/assets"
	"github.com/hubastard/atlas/engine/colors"
	"github.com/hubastard/atlas/engine/gfx/gpu"
	"github.com/hubastard/atlas/engine/gfx/layout"
	"github.com/hubastard/atlas/engine/gfx/shader"
	"github.com/hubastard/atlas/engine/scene"
)

// MapGroups are the binding sets of the map shader: frame uniforms, then
// the map texture.
func MapGroups() []layout.Group {
	return []layout.Group{
		layout.UniformGroup("frame", scene.FrameUniformsSize),
		layout.SampledTextureGroup("map"),
	}
}

type MapPassConfig struct {
	Shader string // WGSL file name, re-read on every reload
	Image  string // map image file name, loaded once
	Color  wgpu.TextureFormat
	Clear  colors.Color
}

// MapPass draws one map image panned and zoomed by the frame uniforms.
type MapPass struct {
	dev  *wgpu.Device
	fsys ofs.FileSystem
	cfg  MapPassConfig

	frameLayout *wgpu.BindGroupLayout
	mapLayout   *wgpu.BindGroupLayout
	mapTex      *gpu.SamplerResource
	pipeline    *wgpu.RenderPipeline
	uniform     *gpu.UniformResource

	// build turns a checked program into a pipeline for a color format.
	build func(prog *shader.Program, color wgpu.TextureFormat) (*wgpu.RenderPipeline, error)
}

// NewMapPass loads the map image and builds the initial pipeline.
func NewMapPass(ctx *gpu.Context, fsys ofs.FileSystem, cfg MapPassConfig) (_ *MapPass, err error) {
	p := &MapPass{dev: ctx.Device, fsys: fsys, cfg: cfg}
	p.build = p.buildPipeline
	defer func() {
		if err != nil {
			p.Release()
		}
	}()

	groups := MapGroups()
	if p.frameLayout, err = gpu.CreateBindGroupLayout(p.dev, groups[0]); err != nil {
		return nil, err
	}
	if p.mapLayout, err = gpu.CreateBindGroupLayout(p.dev, groups[1]); err != nil {
		return nil, err
	}

	img, err := assets.LoadImage(fsys, cfg.Image)
	if err != nil {
		return nil, err
	}
	if p.mapTex, err = gpu.NewSamplerResource(p.dev, ctx.Queue, p.mapLayout, "map", img); err != nil {
		return nil, err
	}

	if p.pipeline, err = p.CreatePipeline(cfg.Color); err != nil {
		return nil, err
	}
	return p, nil
}

var _ RenderPass = (*MapPass)(nil)

func (p *MapPass) Name() string { return "map" }

func (p *MapPass) CreatePipeline(color wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	prog, err := p.compile()
	if err != nil {
		return nil, err
	}
	return p.build(prog, color)
}

// compile reads the shader from disk and checks it against MapGroups.
func (p *MapPass) compile() (*shader.Program, error) {
	src, err := assets.LoadShader(p.fsys, p.cfg.Shader)
	if err != nil {
		return nil, err
	}
	return shader.Compile(p.cfg.Shader, src, MapGroups())
}

func (p *MapPass) buildPipeline(prog *shader.Program, color wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	return gpu.NewQuadPipeline(p.dev, prog, []*wgpu.BindGroupLayout{p.frameLayout, p.mapLayout}, color)
}

// ReloadShaders swaps in a pipeline built from the current shader text. On
// failure the previous pipeline stays bound.
func (p *MapPass) ReloadShaders() error {
	rp, err := p.CreatePipeline(p.cfg.Color)
	if err != nil {
		return err
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	p.pipeline = rp
	return nil
}

func (p *MapPass) Render(t Target, frame scene.FrameUniforms) error {
	// TODO: keep MaxFrameLatency uniform buffers and WriteBuffer into them
	// instead of allocating one per frame.
	u, err := gpu.NewUniformResource(t.Device, p.frameLayout, "frame", &frame)
	if err != nil {
		return err
	}
	p.uniform.Release()
	p.uniform = u

	rp := t.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "map pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       t.Color,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clearValue(p.cfg.Clear),
		}},
	})
	defer rp.Release()

	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.uniform.BindGroup, nil)
	rp.SetBindGroup(1, p.mapTex.BindGroup, nil)
	rp.Draw(4, 1, 0, 0)
	if err := rp.End(); err != nil {
		return fmt.Errorf("end map pass: %w", err)
	}
	return nil
}

func (p *MapPass) Release() {
	p.uniform.Release()
	p.uniform = nil
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	p.mapTex.Release()
	p.mapTex = nil
	if p.mapLayout != nil {
		p.mapLayout.Release()
		p.mapLayout = nil
	}
	if p.frameLayout != nil {
		p.frameLayout.Release()
		p.frameLayout = nil
	}
}
