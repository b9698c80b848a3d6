package scene

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Zoom bounds applied on every scroll.
const (
	MinZoom float32 = 0.1
	MaxZoom float32 = 10.0
)

// FrameUniformsSize is the size in bytes of the marshalled FrameUniforms.
const FrameUniformsSize = 32

// FrameUniforms is the per-frame payload bound at group 0 of every color pass.
// Field order and types mirror the WGSL struct:
//
//	struct FrameUniforms {
//	    time: f32,               // offset 0
//	    zoom: f32,               // offset 4
//	    translation: vec2<f32>,  // offset 8
//	    window_size: vec2<f32>,  // offset 16
//	    mouse_pos: vec2<f32>,    // offset 24
//	}
type FrameUniforms struct {
	Time        float32    // seconds since session start
	Zoom        float32    // [MinZoom, MaxZoom]
	Translation mgl32.Vec2 // pan in pixels, texture space (y down)
	WindowSize  mgl32.Vec2 // pixels
	Pointer     mgl32.Vec2 // pixels, origin bottom-left
}

// NewFrameUniforms returns the initial frame state for a window of the given size.
func NewFrameUniforms(width, height int) FrameUniforms {
	return FrameUniforms{
		Zoom:       1,
		WindowSize: mgl32.Vec2{float32(width), float32(height)},
	}
}

// Size implements gpu.Marshaler.
func (u FrameUniforms) Size() int { return FrameUniformsSize }

// Marshal serializes u in the WGSL uniform layout, little endian.
func (u FrameUniforms) Marshal() []byte {
	buf := make([]byte, FrameUniformsSize)
	putF32(buf[0:], u.Time)
	putF32(buf[4:], u.Zoom)
	putVec2(buf[8:], u.Translation)
	putVec2(buf[16:], u.WindowSize)
	putVec2(buf[24:], u.Pointer)
	return buf
}

func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func putVec2(b []byte, v mgl32.Vec2) {
	putF32(b[0:], v.X())
	putF32(b[4:], v.Y())
}

// ClampZoom bounds z to [MinZoom, MaxZoom].
func ClampZoom(z float32) float32 {
	return mgl32.Clamp(z, MinZoom, MaxZoom)
}
