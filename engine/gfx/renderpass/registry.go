package renderpass

import (
	"errors"
	"fmt"

	"github.com/hubastard/atlas/engine/core"
	"github.com/hubastard/atlas/engine/profiler"
	"github.com/hubastard/atlas/engine/scene"
)

// Registry holds passes in compositing order.
type Registry struct {
	passes []RenderPass
}

func NewRegistry(passes ...RenderPass) *Registry {
	return &Registry{passes: passes}
}

func (r *Registry) Add(p RenderPass) { r.passes = append(r.passes, p) }

// Render records every pass in order and stops at the first failure.
func (r *Registry) Render(t Target, frame scene.FrameUniforms) error {
	for _, p := range r.passes {
		end := profiler.Start("pass." + p.Name())
		err := p.Render(t, frame)
		end()
		if err != nil {
			return fmt.Errorf("pass %s: %w", p.Name(), err)
		}
	}
	return nil
}

// ReloadShaders reloads every pass, even after a failure. Failed passes keep
// their previous pipeline.
func (r *Registry) ReloadShaders() error {
	var errs []error
	for _, p := range r.passes {
		if err := p.ReloadShaders(); err != nil {
			errs = append(errs, fmt.Errorf("pass %s: %w", p.Name(), err))
			continue
		}
		core.Logger().Info("shaders reloaded", "pass", p.Name())
	}
	return errors.Join(errs...)
}

// Release releases the passes in reverse order.
func (r *Registry) Release() {
	for i := len(r.passes) - 1; i >= 0; i-- {
		r.passes[i].Release()
	}
	r.passes = nil
}
