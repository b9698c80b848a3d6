package platform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atlas/engine/scene"
)

func TestToFramebuffer(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		winW, winH   int
		fbW, fbH     int
		wantX, wantY float64
	}{
		{"scale 1", 640, 360, 1280, 720, 1280, 720, 640, 360},
		{"scale 2", 640, 360, 1280, 720, 2560, 1440, 1280, 720},
		{"scale 1.5", 100, 10, 1000, 500, 1500, 750, 150, 15},
		{"minimized", 5, 7, 0, 0, 0, 0, 5, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := toFramebuffer(tt.x, tt.y, tt.winW, tt.winH, tt.fbW, tt.fbH)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("toFramebuffer = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestHiDPIPointerReachesRenderSpace(t *testing.T) {
	// 1280x720 window at scale 2: the frame is sized from the framebuffer.
	f := scene.NewFrameUniforms(2560, 1440)
	c := scene.NewPanZoomController(&f)

	c.PointerMoved(toFramebuffer(640, 360, 1280, 720, 2560, 1440))
	if want := (mgl32.Vec2{1280, 720}); f.Pointer != want {
		t.Errorf("centre pointer = %v, want %v", f.Pointer, want)
	}
	c.PointerMoved(toFramebuffer(0, 720, 1280, 720, 2560, 1440))
	if want := (mgl32.Vec2{0, 0}); f.Pointer != want {
		t.Errorf("bottom-left pointer = %v, want %v", f.Pointer, want)
	}
}
