package core

import "time"

// App defines the viewer hooks driven by Run.
type App interface {
	OnStart(e *Engine) error     // called once after the window exists, before the loop
	OnEvent(e *Engine, ev Event) // input/window events, including one EventRedraw per iteration
	OnShutdown(e *Engine)        // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window Window
	start  time.Time
	err    error
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Fail stops the loop after the current event. Run returns err.
func (e *Engine) Fail(err error) {
	if err == nil || e.err != nil {
		return
	}
	e.err = err
	e.Window.RequestClose()
}

// Err returns the error passed to Fail, if any.
func (e *Engine) Err() error { return e.err }

// Window abstraction.
type Window interface {
	PollEvents()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	// PrePresentNotify is called right before a frame is handed to the presentation engine.
	PrePresentNotify()
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

// EventRedraw asks the app to render one frame.
type EventRedraw struct{}

func (EventRedraw) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

// EventText carries the text produced by a key press, after layout translation.
type EventText struct{ Text string }

func (EventText) isEvent() {}

// EventMouseMove is in device space: origin top-left, y down.
type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
}

func (EventMouseButton) isEvent() {}

// EventScroll reports a wheel or touchpad scroll in lines.
type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyHome
	KeyP
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseButtonUnknown MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)
