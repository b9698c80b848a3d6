package viewer

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atlas/engine/core"
	"github.com/hubastard/atlas/engine/scene"
)

const (
	winW = 800
	winH = 600
)

type fakeWindow struct {
	core.Window
	closed bool
	title  string
}

func (w *fakeWindow) RequestClose()     { w.closed = true }
func (w *fakeWindow) SetTitle(t string) { w.title = t }

type fakeRenderer struct {
	frame     scene.FrameUniforms
	resizes   [][2]int
	renders   int
	reloads   int
	closed    bool
	renderErr error
	resizeErr error
	reloadErr error
}

func (r *fakeRenderer) Frame() *scene.FrameUniforms { return &r.frame }
func (r *fakeRenderer) ReloadShaders() error        { r.reloads++; return r.reloadErr }
func (r *fakeRenderer) Close()                      { r.closed = true }

func (r *fakeRenderer) Resize(w, h int) error {
	r.resizes = append(r.resizes, [2]int{w, h})
	return r.resizeErr
}

func (r *fakeRenderer) RenderFrame() error {
	r.renders++
	return r.renderErr
}

func start(t *testing.T) (*Controller, *fakeRenderer, *core.Engine, *fakeWindow) {
	t.Helper()
	r := &fakeRenderer{frame: scene.NewFrameUniforms(winW, winH)}
	win := &fakeWindow{}
	e := &core.Engine{Window: win}
	c := New(core.DefaultConfig(), func(*core.Engine) (Renderer, error) { return r, nil })
	if err := c.OnStart(e); err != nil {
		t.Fatalf("OnStart: %v", err)
	}
	return c, r, e, win
}

func TestOpenError(t *testing.T) {
	boom := errors.New("no adapter")
	c := New(core.DefaultConfig(), func(*core.Engine) (Renderer, error) { return nil, boom })
	e := &core.Engine{Window: &fakeWindow{}}
	if err := c.OnStart(e); !errors.Is(err, boom) {
		t.Fatalf("OnStart = %v, want %v", err, boom)
	}
	c.OnShutdown(e)
}

func TestPanZoomEndToEnd(t *testing.T) {
	c, r, e, win := start(t)

	for i := 0; i < 4; i++ {
		c.OnEvent(e, core.EventScroll{Yoff: 1})
	}
	if z := r.frame.Zoom; math.Abs(float64(z)-2.44140625) > 1e-4 {
		t.Errorf("zoom = %v, want ~2.44", z)
	}

	// Device space: y grows downwards.
	c.OnEvent(e, core.EventMouseMove{X: 100, Y: winH - 100})
	c.OnEvent(e, core.EventMouseButton{Button: core.MouseButtonRight, Down: true})
	c.OnEvent(e, core.EventMouseMove{X: 150, Y: winH - 80})
	c.OnEvent(e, core.EventMouseButton{Button: core.MouseButtonRight, Down: false})

	if want := (mgl32.Vec2{-50, -20}); r.frame.Translation != want {
		t.Errorf("translation = %v, want %v", r.frame.Translation, want)
	}
	if c.View().Drag.Mode != scene.Free {
		t.Errorf("mode = %v, want free", c.View().Drag.Mode)
	}
	if want := Title("atlas", r.frame.Zoom, -50, -20); win.title != want {
		t.Errorf("title = %q, want %q", win.title, want)
	}
}

func TestLeftDragIsInert(t *testing.T) {
	c, r, e, _ := start(t)
	c.OnEvent(e, core.EventMouseMove{X: 10, Y: 10})
	c.OnEvent(e, core.EventMouseButton{Button: core.MouseButtonLeft, Down: true})
	c.OnEvent(e, core.EventMouseMove{X: 300, Y: 200})
	c.OnEvent(e, core.EventMouseButton{Button: core.MouseButtonLeft, Down: false})
	if r.frame.Translation != (mgl32.Vec2{}) {
		t.Errorf("translation = %v, want zero", r.frame.Translation)
	}
	c.OnEvent(e, core.EventMouseButton{Button: core.MouseButtonMiddle, Down: true})
	if c.View().Drag.Mode != scene.Free {
		t.Errorf("middle button changed mode to %v", c.View().Drag.Mode)
	}
}

func TestHomeResetsView(t *testing.T) {
	c, r, e, win := start(t)
	c.OnEvent(e, core.EventScroll{Yoff: 2})
	c.OnEvent(e, core.EventMouseButton{Button: core.MouseButtonRight, Down: true})
	c.OnEvent(e, core.EventMouseMove{X: 40, Y: 40})
	c.OnEvent(e, core.EventKey{Key: core.KeyHome, Down: true})

	if r.frame.Zoom != 1 || r.frame.Translation != (mgl32.Vec2{}) {
		t.Errorf("after reset zoom=%v translation=%v", r.frame.Zoom, r.frame.Translation)
	}
	if c.View().Drag != (scene.DragState{}) {
		t.Errorf("drag = %+v, want zero", c.View().Drag)
	}
	if !strings.Contains(win.title, "zoom 1.00x") {
		t.Errorf("title = %q", win.title)
	}
}

func TestReloadKey(t *testing.T) {
	c, r, e, _ := start(t)
	c.OnEvent(e, core.EventText{Text: "x"})
	c.OnEvent(e, core.EventText{Text: "r"})
	if r.reloads != 1 {
		t.Fatalf("reloads = %d, want 1", r.reloads)
	}

	r.reloadErr = errors.New("bad shader")
	c.OnEvent(e, core.EventText{Text: "r"})
	c.OnEvent(e, core.EventRedraw{})
	if r.reloads != 2 || r.renders != 1 || e.Err() != nil {
		t.Errorf("reloads=%d renders=%d err=%v", r.reloads, r.renders, e.Err())
	}
}

func TestResizeForwarded(t *testing.T) {
	c, r, e, _ := start(t)
	r.resizeErr = errors.New("unsupported")
	c.OnEvent(e, core.EventResize{W: 1024, H: 768})
	if len(r.resizes) != 1 || r.resizes[0] != [2]int{1024, 768} {
		t.Errorf("resizes = %v", r.resizes)
	}
	if e.Err() != nil {
		t.Errorf("resize failure must not stop the loop: %v", e.Err())
	}
}

func TestRenderErrorIsFatal(t *testing.T) {
	c, r, e, win := start(t)
	boom := errors.New("surface lost")
	r.renderErr = boom
	c.OnEvent(e, core.EventRedraw{})
	if !errors.Is(e.Err(), boom) {
		t.Errorf("Err = %v, want %v", e.Err(), boom)
	}
	if !win.closed {
		t.Error("window not asked to close")
	}
}

func TestCloseAndEscape(t *testing.T) {
	c, r, e, win := start(t)
	c.OnEvent(e, core.EventCloseRequested{})
	if !win.closed {
		t.Error("close request ignored")
	}

	win.closed = false
	c.OnEvent(e, core.EventKey{Key: core.KeyEscape, Down: true})
	c.OnEvent(e, core.EventRedraw{})
	if !win.closed || r.renders != 0 {
		t.Errorf("closed=%v renders=%d after escape", win.closed, r.renders)
	}

	c.OnShutdown(e)
	if !r.closed {
		t.Error("renderer not closed on shutdown")
	}
}
