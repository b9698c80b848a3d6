// Package colors holds RGBA colors that can be set from config files.
package colors

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is RGBA with components in [0, 1].
type Color [4]float32

var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
)

// Hex parses "#rrggbb" or "#rrggbbaa".
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	var c Color
	for i := range c {
		c[i] = float32((v>>(24-8*i))&0xff) / 255
	}
	return c, nil
}

// String formats c as "#rrggbbaa".
func (c Color) String() string {
	var b [4]uint8
	for i, f := range c {
		b[i] = uint8(clamp01(f)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", b[0], b[1], b[2], b[3])
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// UnmarshalYAML accepts a hex string or a list of 3 or 4 components.
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		v, err := Hex(n.Value)
		if err != nil {
			return err
		}
		*c = v
		return nil
	}
	var comps []float32
	if err := n.Decode(&comps); err != nil {
		return err
	}
	if len(comps) != 3 && len(comps) != 4 {
		return fmt.Errorf("line %d: color needs 3 or 4 components, got %d", n.Line, len(comps))
	}
	v := Color{0, 0, 0, 1}
	copy(v[:], comps)
	*c = v
	return nil
}

func (c Color) MarshalYAML() (any, error) { return c.String(), nil }
