package core

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q): %v", path, err)
		}
		if !reflect.DeepEqual(cfg, DefaultConfig()) {
			t.Errorf("LoadConfig(%q) = %+v, want defaults", path, cfg)
		}
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	p := writeFile(t, "atlas.yaml", `
title: world
width: 640
asset_dirs: [maps]
reload_key: "x"
clear_color: "#102030"
`)
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := DefaultConfig()
	if cfg.Title != "world" || cfg.Width != 640 || cfg.ReloadKey != "x" {
		t.Errorf("overlay not applied: %+v", cfg)
	}
	if got := cfg.ClearColor.String(); got != "#102030ff" {
		t.Errorf("ClearColor = %s", got)
	}
	if !reflect.DeepEqual(cfg.AssetDirs, []string{"maps"}) {
		t.Errorf("AssetDirs = %v", cfg.AssetDirs)
	}
	if cfg.Height != def.Height || cfg.MapShader != def.MapShader || !cfg.VSync {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"syntax", "width: [1, 2"},
		{"size", "width: 0"},
		{"dirs", "asset_dirs: []"},
		{"shader", `map_shader: ""`},
		{"reload", `reload_key: ""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeFile(t, "c.yaml", tt.body)); err == nil {
				t.Errorf("LoadConfig(%q) succeeded", tt.body)
			}
		})
	}
}
