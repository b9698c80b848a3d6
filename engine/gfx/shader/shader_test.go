package shader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hubastard/atlas/engine/gfx/layout"
	"github.com/hubastard/atlas/engine/scene"
)

func mapGroups() []layout.Group {
	return []layout.Group{
		layout.UniformGroup("frame", scene.FrameUniformsSize),
		layout.SampledTextureGroup("map"),
	}
}

func readMapShader(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "..", "assets", "shaders", "render_map.wgsl"))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestCheckMapShader(t *testing.T) {
	p, err := Check("render_map.wgsl", readMapShader(t), mapGroups())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if p.Module.Groups() != 2 {
		t.Errorf("groups = %d, want 2", p.Module.Groups())
	}
}

func TestCompileMapShader(t *testing.T) {
	p, err := Compile("render_map.wgsl", readMapShader(t), mapGroups())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.Module.IR == nil {
		t.Fatal("program has no IR")
	}
}

func TestCompileUniformSizeMismatch(t *testing.T) {
	src := strings.Replace(readMapShader(t), "mouse_pos: vec2<f32>,", "mouse_pos: vec2<f32>,\n    extra: vec4<f32>,", 1)
	if src == readMapShader(t) {
		t.Fatal("FrameUniforms struct not found in render_map.wgsl")
	}
	_, err := Compile("render_map.wgsl", src, mapGroups())
	var me *layout.MismatchError
	if !errors.As(err, &me) || me.Group != 0 || me.Binding != 0 {
		t.Fatalf("Compile = %v, want *layout.MismatchError at (0, 0)", err)
	}
}

func TestCheckMissingEntryPoint(t *testing.T) {
	src := strings.Replace(readMapShader(t), "fn fragmentMain", "fn fragment_main", 1)
	_, err := Check("render_map.wgsl", src, mapGroups())
	if !errors.Is(err, ErrNoEntryPoint) {
		t.Fatalf("Check = %v, want ErrNoEntryPoint", err)
	}
}

func TestCheckLayoutMismatch(t *testing.T) {
	src := strings.Replace(readMapShader(t), "@group(1) @binding(1) var map_texture", "@group(2) @binding(1) var map_texture", 1)
	_, err := Compile("render_map.wgsl", src, mapGroups())
	var me *layout.MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("Compile = %v, want *layout.MismatchError", err)
	}
}

func TestCompileMalformed(t *testing.T) {
	src := readMapShader(t) + "\nfn broken( {\n"
	if _, err := Compile("render_map.wgsl", src, mapGroups()); err == nil {
		t.Fatal("malformed shader compiled")
	}
}
