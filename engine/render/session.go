// Package render drives one window's frames: surface configuration, frame
// state and pass submission.
package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atlas/engine/assets"
	"github.com/hubastard/atlas/engine/core"
	"github.com/hubastard/atlas/engine/gfx/gpu"
	"github.com/hubastard/atlas/engine/gfx/renderpass"
	"github.com/hubastard/atlas/engine/profiler"
	"github.com/hubastard/atlas/engine/scene"
)

// Window is a core.Window a WebGPU surface can be created for.
type Window interface {
	core.Window
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// backend is the GPU side of a session; *gpu.Context implements it.
type backend interface {
	Config() gpu.SurfaceConfig
	Configure(cfg gpu.SurfaceConfig) error
	AcquireFrame() (*gpu.Frame, error)
	Encode(record func(enc *wgpu.CommandEncoder) error) error
	Present(f *gpu.Frame)
	Discard(f *gpu.Frame)
	Release()
}

// passes is the compositing stack; *renderpass.Registry implements it.
type passes interface {
	Render(t renderpass.Target, frame scene.FrameUniforms) error
	ReloadShaders() error
	Release()
}

// Session owns the device, the surface and the frame state of one window.
type Session struct {
	win    core.Window
	gpu    backend
	dev    *wgpu.Device
	passes passes

	frame scene.FrameUniforms
	start time.Time
	now   func() time.Time
}

// New acquires the GPU for win, configures its surface at the current
// framebuffer size and builds the map pass. It blocks until the device is
// ready; ctx is checked before and after that.
func New(ctx context.Context, win Window, cfg core.Config) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gc, err := gpu.NewContext(win.SurfaceDescriptor())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		gc.Release()
		return nil, err
	}

	w, h := win.FramebufferSize()
	sc, err := gpu.NewSurfaceConfig(gc.Capabilities(), uint32(max(w, 1)), uint32(max(h, 1)), cfg.VSync)
	if err != nil {
		gc.Release()
		return nil, err
	}
	if err := gc.Configure(sc); err != nil {
		gc.Release()
		return nil, err
	}

	fsys, err := assets.NewFS(cfg.AssetDirs...)
	if err != nil {
		gc.Release()
		return nil, err
	}
	mp, err := renderpass.NewMapPass(gc, fsys, renderpass.MapPassConfig{
		Shader: cfg.MapShader,
		Image:  cfg.MapImage,
		Color:  sc.ViewFormat,
		Clear:  cfg.ClearColor,
	})
	if errors.Is(err, fs.ErrNotExist) {
		gc.Release()
		return nil, fmt.Errorf("map pass: %w (searched %q; set map_image and asset_dirs in the config)", err, cfg.AssetDirs)
	}
	if err != nil {
		gc.Release()
		return nil, fmt.Errorf("map pass: %w", err)
	}

	core.Logger().Info("render session ready", "width", sc.Width, "height", sc.Height, "format", sc.Format, "view_format", sc.ViewFormat)
	return newSession(win, gc, gc.Device, renderpass.NewRegistry(mp), int(sc.Width), int(sc.Height)), nil
}

func newSession(win core.Window, b backend, dev *wgpu.Device, p passes, w, h int) *Session {
	s := &Session{
		win:    win,
		gpu:    b,
		dev:    dev,
		passes: p,
		frame:  scene.NewFrameUniforms(w, h),
		now:    time.Now,
	}
	s.start = s.now()
	return s
}

// Frame returns the live frame state. Changes are picked up by the next
// RenderFrame.
func (s *Session) Frame() *scene.FrameUniforms { return &s.frame }

// Resize reconfigures the surface to exactly w x h. Zero sizes (minimized
// windows) are ignored. On failure the previous size and configuration stay.
func (s *Session) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		core.Logger().Debug("ignoring empty resize", "width", w, "height", h)
		return nil
	}
	cfg := s.gpu.Config().Resized(uint32(w), uint32(h))
	if err := s.gpu.Configure(cfg); err != nil {
		return fmt.Errorf("resize to %dx%d: %w", w, h, err)
	}
	s.frame.WindowSize = mgl32.Vec2{float32(w), float32(h)}
	return nil
}

// RenderFrame records every pass into one command buffer, submits it and
// presents. Any error leaves nothing presented.
func (s *Session) RenderFrame() error {
	defer profiler.Start("frame")()

	end := profiler.Start("acquire")
	f, err := s.gpu.AcquireFrame()
	end()
	if err != nil {
		return err
	}
	s.frame.Time = float32(s.now().Sub(s.start).Seconds())

	err = s.gpu.Encode(func(enc *wgpu.CommandEncoder) error {
		defer profiler.Start("record")()
		return s.passes.Render(renderpass.Target{Device: s.dev, Encoder: enc, Color: f.View}, s.frame)
	})
	if err != nil {
		s.gpu.Discard(f)
		return err
	}

	s.win.PrePresentNotify()
	end = profiler.Start("present")
	s.gpu.Present(f)
	end()
	return nil
}

// ReloadShaders rebuilds every pass pipeline from the shader files on disk.
// Passes that fail keep drawing with their previous pipeline.
func (s *Session) ReloadShaders() error {
	return s.passes.ReloadShaders()
}

// Close releases the passes, then the GPU.
func (s *Session) Close() {
	s.passes.Release()
	s.gpu.Release()
}
