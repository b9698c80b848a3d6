package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/hubastard/atlas/engine/core"
	"github.com/hubastard/atlas/engine/platform"
	"github.com/hubastard/atlas/engine/render"
	"github.com/hubastard/atlas/engine/viewer"
)

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run starts the viewer and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("atlas", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "atlas.yaml", "YAML config file; missing means defaults")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	core.SetLogger(core.NewLogger(stderr, os.Getenv(core.LogEnv)))
	log := core.Logger()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		log.Error("bad config", "err", err)
		return 1
	}

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, nil)
		if err != nil {
			return nil, err
		}
		win = w
		return w, nil
	}
	open := func(e *core.Engine) (viewer.Renderer, error) {
		rw, ok := e.Window.(render.Window)
		if !ok {
			return nil, fmt.Errorf("window %T cannot host a surface", e.Window)
		}
		return render.New(context.Background(), rw, cfg)
	}

	err = core.Run(viewer.New(cfg, open), cfg, newWindow)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		log.Error("viewer failed", "err", err)
		return 1
	}
	return 0
}
