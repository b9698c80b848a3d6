// Package gpu owns the WebGPU device, the window surface and the resources
// passes bind: uniform buffers, sampled textures and render pipelines.
package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hubastard/atlas/engine/core"
)

// Context is one instance/adapter/device/queue bound to one window surface.
// All methods must be called from the thread that created it.
type Context struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface

	caps   wgpu.SurfaceCapabilities
	maxDim uint32 // largest surface side the device accepts
	config SurfaceConfig
}

// NewContext creates the surface for the window described by sd and
// acquires the first adapter able to present to it. It blocks until the
// device is ready.
func NewContext(sd *wgpu.SurfaceDescriptor) (*Context, error) {
	c := &Context{Instance: wgpu.CreateInstance(nil)}
	c.Surface = c.Instance.CreateSurface(sd)
	if c.Surface == nil {
		c.Release()
		return nil, fmt.Errorf("gpu: create surface failed")
	}

	a, err := c.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: c.Surface,
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("gpu: request adapter: %w", err)
	}
	c.Adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{Label: "atlas device"})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}
	c.Device = d
	c.Queue = d.GetQueue()
	c.maxDim = d.GetLimits().Limits.MaxTextureDimension2D

	c.caps = c.Surface.GetCapabilities(c.Adapter)
	if len(c.caps.Formats) == 0 {
		c.Release()
		return nil, fmt.Errorf("gpu: surface reports no formats for this adapter")
	}

	core.Logger().Info("gpu ready", "formats", c.caps.Formats, "present_modes", c.caps.PresentModes, "max_texture_2d", c.maxDim)
	return c, nil
}

// Capabilities returns what the surface supports on the acquired adapter.
func (c *Context) Capabilities() wgpu.SurfaceCapabilities { return c.caps }

// Release frees everything in reverse acquisition order. Safe on a
// partially built Context.
func (c *Context) Release() {
	if c.Queue != nil {
		c.Queue.Release()
		c.Queue = nil
	}
	if c.Device != nil {
		c.Device.Release()
		c.Device = nil
	}
	if c.Adapter != nil {
		c.Adapter.Release()
		c.Adapter = nil
	}
	if c.Surface != nil {
		c.Surface.Release()
		c.Surface = nil
	}
	if c.Instance != nil {
		c.Instance.Release()
		c.Instance = nil
	}
}
