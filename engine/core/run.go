package core

import (
	"runtime"
	"time"
)

// Run wires the platform window to the app and executes the main loop.
//
// The loop polls: pending events are processed, then a redraw is emitted
// unconditionally. Pacing comes from the surface's presentation engine.
func Run(app App, cfg Config, newWindow func(Config) (Window, error)) error {
	// Windowing and surface calls require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	eng := &Engine{Window: win, start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		if eng.err != nil {
			return
		}
		app.OnEvent(eng, ev)
	})

	if err := app.OnStart(eng); err != nil {
		return err
	}

	log := Logger()
	for !win.ShouldClose() {
		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()
		if win.ShouldClose() {
			break
		}
		app.OnEvent(eng, EventRedraw{})
	}

	app.OnShutdown(eng)
	log.Info("viewer exit", "uptime", eng.Uptime().Round(time.Millisecond))
	return eng.err
}
