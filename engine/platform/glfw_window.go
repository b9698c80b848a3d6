package platform

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/atlas/engine/core"
)

// GLFWWindow implements core.Window and pushes events to the app via a handler.
// The window has no client API: the WebGPU surface owns presentation.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(core.Event)
}

// Must be called on main thread.
func NewGLFWWindow(cfg core.Config, onEvent func(core.Event)) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	if cfg.MinWidth > 0 && cfg.MinHeight > 0 {
		win.SetSizeLimits(cfg.MinWidth, cfg.MinHeight, glfw.DontCare, glfw.DontCare)
	}
	core.Logger().Info("window created", "glfw", glfw.GetVersionString(), "width", cfg.Width, "height", cfg.Height)

	gw := &GLFWWindow{w: win, onEv: onEvent}

	// Callbacks -> translate to core.Event
	win.SetCloseCallback(func(*glfw.Window) { gw.emit(core.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResize{W: w, H: h})
	})
	// Cursor positions come in screen coordinates; everything else is in
	// framebuffer pixels.
	win.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		ww, wh := w.GetSize()
		fw, fh := w.GetFramebufferSize()
		x, y = toFramebuffer(x, y, ww, wh, fw, fh)
		gw.emit(core.EventMouseMove{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b := translateButton(button)
		if b == core.MouseButtonUnknown || action == glfw.Repeat {
			return
		}
		gw.emit(core.EventMouseButton{Button: b, Down: action == glfw.Press})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		gw.emit(core.EventKey{Key: k, Down: action != glfw.Release, Mods: translateMods(mods)})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		gw.emit(core.EventText{Text: string(r)})
	})
	// GLFW reports wheel and touchpad scrolling alike as line offsets.
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(core.EventScroll{Xoff: xoff, Yoff: yoff})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// SurfaceDescriptor describes the native window for WebGPU surface creation.
func (g *GLFWWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.w)
}

// Destroy closes the window and terminates GLFW.
func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

// core.Window impl
func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

// GLFW has no pre-present hook.
func (g *GLFWWindow) PrePresentNotify() {}

// toFramebuffer scales a screen-coordinate position into framebuffer
// pixels. An empty window leaves the position unchanged.
func toFramebuffer(x, y float64, winW, winH, fbW, fbH int) (float64, float64) {
	if winW <= 0 || winH <= 0 {
		return x, y
	}
	return x * float64(fbW) / float64(winW), y * float64(fbH) / float64(winH)
}

func translateButton(b glfw.MouseButton) core.MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseButtonLeft
	case glfw.MouseButtonRight:
		return core.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return core.MouseButtonMiddle
	default:
		return core.MouseButtonUnknown
	}
}

func translateKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeyHome:
		return core.KeyHome
	case glfw.KeyP:
		return core.KeyP
	default:
		return core.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
