// Package renderpass defines the color passes a frame is composited from.
package renderpass

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hubastard/atlas/engine/colors"
	"github.com/hubastard/atlas/engine/scene"
)

var ErrNotImplemented = errors.New("renderpass: not implemented")

// Target is what a pass records into for one frame.
type Target struct {
	Device  *wgpu.Device
	Encoder *wgpu.CommandEncoder
	Color   *wgpu.TextureView
	Depth   *wgpu.TextureView // optional
}

// RenderPass is one drawing stage fed by the per-frame state.
type RenderPass interface {
	Name() string
	// CreatePipeline builds a pipeline from the pass's current shader text.
	CreatePipeline(color wgpu.TextureFormat) (*wgpu.RenderPipeline, error)
	// Render records the pass. Each pass clears its color target.
	Render(t Target, frame scene.FrameUniforms) error
	// ReloadShaders rebuilds the pipeline. On error the previous one is kept.
	ReloadShaders() error
	Release()
}

func clearValue(c colors.Color) wgpu.Color {
	return wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}
