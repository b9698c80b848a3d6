package renderpass

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hubastard/atlas/engine/assets"
	"github.com/hubastard/atlas/engine/gfx/layout"
	"github.com/hubastard/atlas/engine/gfx/shader"
)

func readMapShader(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "..", "assets", "shaders", "render_map.wgsl"))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

// newTestMapPass serves render_map.wgsl with src from a temp dir. Pipelines
// are stand-ins counted by built; no GPU is touched.
func newTestMapPass(t *testing.T, src string) (p *MapPass, dir string, built *int) {
	t.Helper()
	dir = t.TempDir()
	writeShader(t, dir, src)
	fsys, err := assets.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	built = new(int)
	p = &MapPass{fsys: fsys, cfg: MapPassConfig{Shader: "render_map.wgsl"}}
	p.build = func(prog *shader.Program, _ wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
		if prog.Module == nil {
			t.Error("build called without a reflected module")
		}
		*built++
		return &wgpu.RenderPipeline{}, nil
	}
	return p, dir, built
}

func writeShader(t *testing.T, dir, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "render_map.wgsl"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMapPassReloadBuildsFromDisk(t *testing.T) {
	p, _, built := newTestMapPass(t, readMapShader(t))
	if err := p.ReloadShaders(); err != nil {
		t.Fatalf("ReloadShaders: %v", err)
	}
	if p.pipeline == nil || *built != 1 {
		t.Fatalf("pipeline = %v after %d builds", p.pipeline, *built)
	}
}

func TestMapPassReloadKeepsLastGood(t *testing.T) {
	good := readMapShader(t)
	tests := []struct {
		name  string
		src   string
		check func(t *testing.T, err error)
	}{
		{
			name: "syntax error",
			src:  good + "\nfn broken( {\n",
		},
		{
			name: "binding moved",
			src:  strings.Replace(good, "@group(1) @binding(1)", "@group(2) @binding(1)", 1),
			check: func(t *testing.T, err error) {
				var me *layout.MismatchError
				if !errors.As(err, &me) {
					t.Errorf("err = %v, want *layout.MismatchError", err)
				}
			},
		},
		{
			name: "entry point renamed",
			src:  strings.Replace(good, "fn fragmentMain", "fn fragment_main", 1),
			check: func(t *testing.T, err error) {
				if !errors.Is(err, shader.ErrNoEntryPoint) {
					t.Errorf("err = %v, want ErrNoEntryPoint", err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, dir, built := newTestMapPass(t, good)
			if err := p.ReloadShaders(); err != nil {
				t.Fatalf("first ReloadShaders: %v", err)
			}
			live := p.pipeline

			writeShader(t, dir, tt.src)
			err := p.ReloadShaders()
			if err == nil {
				t.Fatal("broken shader reloaded")
			}
			if tt.check != nil {
				tt.check(t, err)
			}
			if p.pipeline != live {
				t.Error("live pipeline replaced after a failed reload")
			}
			if *built != 1 {
				t.Errorf("builds = %d, want 1", *built)
			}
		})
	}
}
