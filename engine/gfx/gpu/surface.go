package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// MaxFrameLatency is the number of frames the presentation engine may queue.
// It is wgpu-native's default; the binding does not expose the setting.
const MaxFrameLatency = 2

var errZeroSize = errors.New("gpu: surface size must be non-zero")

// SurfaceConfig is the applied configuration of a window surface.
type SurfaceConfig struct {
	Width, Height uint32
	Format        wgpu.TextureFormat // surface format, fixed for the session
	ViewFormat    wgpu.TextureFormat // sRGB format frames are rendered through
	PresentMode   wgpu.PresentMode
	AlphaMode     wgpu.CompositeAlphaMode
}

// NewSurfaceConfig picks the first supported format and alpha mode. vsync
// selects FIFO presentation, otherwise the first mode the surface reports.
func NewSurfaceConfig(caps wgpu.SurfaceCapabilities, width, height uint32, vsync bool) (SurfaceConfig, error) {
	if len(caps.Formats) == 0 {
		return SurfaceConfig{}, errors.New("gpu: no surface formats")
	}
	cfg := SurfaceConfig{
		Width:       width,
		Height:      height,
		Format:      caps.Formats[0],
		ViewFormat:  SRGB(caps.Formats[0]),
		PresentMode: wgpu.PresentModeFifo,
	}
	if !vsync && len(caps.PresentModes) > 0 {
		cfg.PresentMode = caps.PresentModes[0]
	}
	if len(caps.AlphaModes) > 0 {
		cfg.AlphaMode = caps.AlphaModes[0]
	}
	return cfg, nil
}

// Resized returns a copy of c with a new size.
func (c SurfaceConfig) Resized(width, height uint32) SurfaceConfig {
	c.Width, c.Height = width, height
	return c
}

func (c SurfaceConfig) configuration() *wgpu.SurfaceConfiguration {
	sc := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.Format,
		Width:       c.Width,
		Height:      c.Height,
		PresentMode: c.PresentMode,
		AlphaMode:   c.AlphaMode,
	}
	if c.ViewFormat != c.Format {
		sc.ViewFormats = []wgpu.TextureFormat{c.ViewFormat}
	}
	return sc
}

// SRGB returns the sRGB variant of an 8-bit unorm color format, or f when
// there is none.
func SRGB(f wgpu.TextureFormat) wgpu.TextureFormat {
	switch f {
	case wgpu.TextureFormatBGRA8Unorm:
		return wgpu.TextureFormatBGRA8UnormSrgb
	case wgpu.TextureFormatRGBA8Unorm:
		return wgpu.TextureFormatRGBA8UnormSrgb
	}
	return f
}

// Configure applies cfg to the surface. A size beyond the device's 2D
// texture limit or an unsupported format or present mode is refused and the
// previous configuration stays current.
func (c *Context) Configure(cfg SurfaceConfig) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		return errZeroSize
	}
	if c.maxDim != 0 && (cfg.Width > c.maxDim || cfg.Height > c.maxDim) {
		return fmt.Errorf("gpu: surface %dx%d exceeds the device limit of %d", cfg.Width, cfg.Height, c.maxDim)
	}
	if !c.supports(cfg) {
		return fmt.Errorf("gpu: surface does not support format %v / present mode %v", cfg.Format, cfg.PresentMode)
	}
	// wgpu-native aborts on a configuration it rejects; everything it
	// checks must be checked above.
	c.Surface.Configure(c.Adapter, c.Device, cfg.configuration())
	c.config = cfg
	return nil
}

// Config returns the last configuration applied successfully.
func (c *Context) Config() SurfaceConfig { return c.config }

func (c *Context) supports(cfg SurfaceConfig) bool {
	var format, mode bool
	for _, f := range c.caps.Formats {
		format = format || f == cfg.Format
	}
	for _, m := range c.caps.PresentModes {
		mode = mode || m == cfg.PresentMode
	}
	// FIFO is always available.
	return format && (mode || cfg.PresentMode == wgpu.PresentModeFifo)
}
