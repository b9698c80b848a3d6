// Package viewer connects window events to a render session and the
// pan/zoom state machine.
package viewer

import (
	"fmt"
	"os"

	"github.com/hubastard/atlas/engine/core"
	"github.com/hubastard/atlas/engine/profiler"
	"github.com/hubastard/atlas/engine/scene"
)

// Renderer is the render side the controller drives; *render.Session
// implements it.
type Renderer interface {
	Frame() *scene.FrameUniforms
	Resize(w, h int) error
	RenderFrame() error
	ReloadShaders() error
	Close()
}

// OpenFunc builds the renderer once the window exists.
type OpenFunc func(e *core.Engine) (Renderer, error)

// Controller implements core.App for the map viewer.
type Controller struct {
	cfg   core.Config
	open  OpenFunc
	r     Renderer
	view  *scene.PanZoomController
	input *core.Input

	// profileDir is where Ctrl+P writes the profile.
	profileDir string
}

func New(cfg core.Config, open OpenFunc) *Controller {
	return &Controller{
		cfg:        cfg,
		open:       open,
		input:      core.NewInput(),
		profileDir: os.TempDir(),
	}
}

// View exposes the pan/zoom state. It is nil before OnStart.
func (c *Controller) View() *scene.PanZoomController { return c.view }

func (c *Controller) OnStart(e *core.Engine) error {
	profiler.Init(c.cfg.ProfilerCapacity)

	r, err := c.open(e)
	if err != nil {
		return fmt.Errorf("open renderer: %w", err)
	}
	c.r = r
	c.view = scene.NewPanZoomController(r.Frame())
	c.updateTitle(e)
	return nil
}

func (c *Controller) OnEvent(e *core.Engine, ev core.Event) {
	c.input.Handle(ev)
	log := core.Logger()

	switch ev := ev.(type) {
	case core.EventCloseRequested:
		e.Window.RequestClose()

	case core.EventRedraw:
		if c.input.IsKeyDown(core.KeyEscape) {
			e.Window.RequestClose()
			return
		}
		if err := c.r.RenderFrame(); err != nil {
			e.Fail(fmt.Errorf("render frame: %w", err))
		}

	case core.EventResize:
		if err := c.r.Resize(ev.W, ev.H); err != nil {
			log.Error("resize failed, keeping previous surface", "err", err)
		}

	case core.EventText:
		if ev.Text == c.cfg.ReloadKey {
			if err := c.r.ReloadShaders(); err != nil {
				log.Error("shader reload failed, keeping previous pipelines", "err", err)
			}
		}

	case core.EventKey:
		if ev.Down {
			c.onKey(e, ev)
		}

	case core.EventMouseMove:
		c.view.PointerMoved(ev.X, ev.Y)
		if c.view.Drag.Mode == scene.DraggingRight {
			c.updateTitle(e)
		}

	case core.EventMouseButton:
		b := dragButton(ev.Button)
		if ev.Down {
			c.view.ButtonPressed(b)
		} else {
			c.view.ButtonReleased(b)
		}

	case core.EventScroll:
		if ev.Yoff == 0 {
			return
		}
		c.view.Scroll(float32(ev.Yoff))
		c.updateTitle(e)
	}
}

func (c *Controller) onKey(e *core.Engine, ev core.EventKey) {
	switch {
	case ev.Key == core.KeyHome:
		c.view.Reset()
		c.updateTitle(e)
	case ev.Key == core.KeyP && ev.Mods&core.ModCtrl != 0:
		c.dumpProfile()
	}
}

func (c *Controller) dumpProfile() {
	log := core.Logger()
	path, err := profiler.Dump(c.profileDir)
	if err != nil {
		log.Warn("profile dump failed", "err", err)
		return
	}
	log.Info("profile written", "path", path)
	if err := profiler.Open(path); err != nil {
		log.Debug("could not open profile viewer", "err", err)
	}
}

func (c *Controller) OnShutdown(e *core.Engine) {
	if c.r != nil {
		c.r.Close()
	}
}

func (c *Controller) updateTitle(e *core.Engine) {
	f := c.view.Frame
	e.Window.SetTitle(Title(c.cfg.Title, f.Zoom, f.Translation.X(), f.Translation.Y()))
}

// Title formats the window title for a view.
func Title(base string, zoom, tx, ty float32) string {
	return fmt.Sprintf("%s  zoom %.2fx  pan (%.0f, %.0f)", base, zoom, tx, ty)
}

func dragButton(b core.MouseButton) scene.DragButton {
	switch b {
	case core.MouseButtonLeft:
		return scene.ButtonLeft
	case core.MouseButtonRight:
		return scene.ButtonRight
	}
	return scene.ButtonNone
}
