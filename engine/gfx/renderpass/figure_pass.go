package renderpass

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atlas/engine/scene"
)

// MaxFigures is the number of figures one FigureUniforms block describes.
const MaxFigures = 16

// FigureUniforms is the per-frame input of the figure pass.
type FigureUniforms struct {
	Origins    [MaxFigures]mgl32.Vec2
	Zooms      [MaxFigures]float32
	WindowSize mgl32.Vec2
	Extent     mgl32.Vec2 // size of one figure in the atlas
	Time       float32
	Pointer    mgl32.Vec2
	Dragged    bool
}

// FigurePass will draw atlas-backed figures on top of the map. It is not
// registered anywhere yet.
type FigurePass struct {
	Figures []string
}

func NewFigurePass(figures ...string) (*FigurePass, error) {
	// TODO: pack the figure images into one atlas texture and upload it as a
	// SamplerResource.
	return nil, ErrNotImplemented
}

var _ RenderPass = (*FigurePass)(nil)

func (p *FigurePass) Name() string { return "figure" }

func (p *FigurePass) CreatePipeline(wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	return nil, ErrNotImplemented
}

func (p *FigurePass) Render(Target, scene.FrameUniforms) error { return ErrNotImplemented }
func (p *FigurePass) ReloadShaders() error                      { return ErrNotImplemented }
func (p *FigurePass) Release()                                  {}
