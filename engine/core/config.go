package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hubastard/atlas/engine/colors"
	"gopkg.in/yaml.v3"
)

// Config for the viewer run.
type Config struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
	VSync     bool   `yaml:"vsync"`

	// ClearColor is what each pass clears its target to before drawing.
	ClearColor colors.Color `yaml:"clear_color"`

	// AssetDirs are searched in order when resolving shader and image names.
	AssetDirs []string `yaml:"asset_dirs"`
	MapShader string   `yaml:"map_shader"`
	MapImage  string   `yaml:"map_image"`

	// ReloadKey is the text a key press must produce to rebuild all pipelines.
	ReloadKey string `yaml:"reload_key"`

	ProfilerCapacity int `yaml:"profiler_capacity"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Title:            "atlas",
		Width:            1280,
		Height:           720,
		MinWidth:         20,
		MinHeight:        20,
		VSync:            true,
		ClearColor:       colors.Black,
		AssetDirs:        []string{"assets/shaders", "assets/textures", "../shaders", "../assets"},
		MapShader:        "render_map.wgsl",
		MapImage:         "map.png",
		ReloadKey:        "r",
		ProfilerCapacity: 1 << 16,
	}
}

// LoadConfig overlays the YAML file at path on top of DefaultConfig.
// An empty path or a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	}
	if len(c.AssetDirs) == 0 {
		return errors.New("no asset directories")
	}
	if c.MapShader == "" || c.MapImage == "" {
		return errors.New("map shader and map image must be set")
	}
	if c.ReloadKey == "" {
		return errors.New("reload key must be set")
	}
	return nil
}
