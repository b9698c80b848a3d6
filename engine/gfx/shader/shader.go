// Package shader turns WGSL text into a checked program description before
// any GPU object is created.
package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/hubastard/atlas/engine/core"
	"github.com/hubastard/atlas/engine/gfx/layout"
)

// Entry point names every pass shader must declare.
const (
	VertexEntry   = "vertexMain"
	FragmentEntry = "fragmentMain"
)

var ErrNoEntryPoint = errors.New("shader: missing entry point")

// Program is a WGSL source that declares the expected entry points and
// binding sets.
type Program struct {
	Name   string
	Source string
	Module *layout.Module
	Groups []layout.Group
}

// Compile reflects src, checks its entry points and bindings against groups,
// then validates the IR.
func Compile(name, src string, groups []layout.Group) (*Program, error) {
	p, err := Check(name, src, groups)
	if err != nil {
		return nil, err
	}
	if err := Validate(name, p.Module); err != nil {
		return nil, err
	}
	return p, nil
}

// Check is Compile without IR validation.
func Check(name, src string, groups []layout.Group) (*Program, error) {
	mod, err := layout.Reflect(src)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}
	for _, ep := range []struct {
		fn    string
		stage layout.Stage
	}{{VertexEntry, layout.StageVertex}, {FragmentEntry, layout.StageFragment}} {
		if !mod.HasEntryPoint(ep.fn, ep.stage) {
			return nil, fmt.Errorf("shader %q: @%s fn %s: %w", name, ep.stage, ep.fn, ErrNoEntryPoint)
		}
	}
	if err := layout.Check(mod, groups); err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}
	return &Program{Name: name, Source: src, Module: mod, Groups: groups}, nil
}

// Validate runs naga's IR validator over the reflected module.
func Validate(name string, mod *layout.Module) error {
	verrs, err := naga.Validate(mod.IR)
	if err != nil {
		return fmt.Errorf("shader %q: validate: %w", name, err)
	}
	if len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return fmt.Errorf("shader %q: %w", name, errors.Join(errs...))
	}
	core.Logger().Debug("shader validated", "shader", name, "entry_points", len(mod.EntryPoints), "bindings", len(mod.Bindings))
	return nil
}
