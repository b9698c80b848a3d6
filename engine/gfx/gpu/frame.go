package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Frame is one acquired surface texture and the sRGB view passes draw into.
type Frame struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

// AcquireFrame returns the next surface texture. An error means the surface
// cannot produce frames.
func (c *Context) AcquireFrame() (*Frame, error) {
	tex, err := c.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("gpu: acquire surface texture: %w", err)
	}
	view, err := tex.CreateView(&wgpu.TextureViewDescriptor{
		Label:           "frame view",
		Format:          c.config.ViewFormat,
		Dimension:       wgpu.TextureViewDimension2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspectAll,
	})
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("gpu: create frame view: %w", err)
	}
	return &Frame{Texture: tex, View: view}, nil
}

// Encode opens one command encoder, lets record fill it and submits the
// result. Nothing is submitted if record fails.
func (c *Context) Encode(record func(enc *wgpu.CommandEncoder) error) error {
	enc, err := c.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "frame encoder"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	defer enc.Release()

	if err := record(enc); err != nil {
		return err
	}
	cmd, err := enc.Finish(nil)
	if err != nil {
		return fmt.Errorf("gpu: finish commands: %w", err)
	}
	defer cmd.Release()
	c.Queue.Submit(cmd)
	return nil
}

// Present queues f for display and releases it.
func (c *Context) Present(f *Frame) {
	c.Surface.Present()
	f.Release()
}

// Discard releases a frame that will not be presented.
func (c *Context) Discard(f *Frame) { f.Release() }

func (f *Frame) Release() {
	if f.View != nil {
		f.View.Release()
		f.View = nil
	}
	if f.Texture != nil {
		f.Texture.Release()
		f.Texture = nil
	}
}
