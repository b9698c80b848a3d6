package scene

import "github.com/go-gl/mathgl/mgl32"

// DragMode is the state of the pan/zoom state machine.
type DragMode int

const (
	Free DragMode = iota
	DraggingLeft
	DraggingRight
)

func (m DragMode) String() string {
	switch m {
	case Free:
		return "free"
	case DraggingLeft:
		return "dragging-left"
	case DraggingRight:
		return "dragging-right"
	}
	return "unknown"
}

// DragState holds the drag bookkeeping.
// Anchor is only meaningful while Mode != Free. Accumulated only changes
// when a right drag ends.
type DragState struct {
	Mode        DragMode
	Anchor      mgl32.Vec2 // pointer at drag start, render space
	Accumulated mgl32.Vec2 // committed pan before the current drag
}

// PanZoomController derives the frame's pan and zoom from pointer input.
// Right drag pans, scroll zooms. Left drag is tracked but has no effect.
type PanZoomController struct {
	Frame *FrameUniforms
	Drag  DragState
}

func NewPanZoomController(frame *FrameUniforms) *PanZoomController {
	return &PanZoomController{Frame: frame}
}

// PointerMoved takes a device-space position (origin top-left, y down).
func (c *PanZoomController) PointerMoved(x, y float64) {
	f := c.Frame
	f.Pointer = mgl32.Vec2{float32(x), f.WindowSize.Y() - float32(y)}

	switch c.Drag.Mode {
	case DraggingRight:
		// Render space is y up, the map is sampled y down: flip the y delta.
		d := mgl32.Vec2{
			c.Drag.Anchor.X() - f.Pointer.X(),
			f.Pointer.Y() - c.Drag.Anchor.Y(),
		}
		f.Translation = c.Drag.Accumulated.Add(d)
	case DraggingLeft:
		// reserved
	}
}

// ButtonPressed starts a drag when no drag is in progress.
func (c *PanZoomController) ButtonPressed(b DragButton) {
	if c.Drag.Mode != Free {
		return
	}
	switch b {
	case ButtonRight:
		c.Drag.Mode = DraggingRight
	case ButtonLeft:
		c.Drag.Mode = DraggingLeft
	default:
		return
	}
	c.Drag.Anchor = c.Frame.Pointer
}

// ButtonReleased ends the drag started by the same button.
func (c *PanZoomController) ButtonReleased(b DragButton) {
	switch {
	case b == ButtonRight && c.Drag.Mode == DraggingRight:
		c.Drag.Mode = Free
		c.Drag.Accumulated = c.Frame.Translation
	case b == ButtonLeft && c.Drag.Mode == DraggingLeft:
		c.Drag.Mode = Free
	}
}

// Scroll scales the zoom by 1 + delta/4, clamped to [MinZoom, MaxZoom].
// delta is in lines.
func (c *PanZoomController) Scroll(delta float32) {
	c.Frame.Zoom = ClampZoom(c.Frame.Zoom * (1 + delta/4))
}

// Reset restores zoom 1 and no pan, and drops any drag in progress.
func (c *PanZoomController) Reset() {
	c.Frame.Zoom = 1
	c.Frame.Translation = mgl32.Vec2{}
	c.Drag = DragState{}
}

// DragButton identifies the buttons the state machine reacts to.
type DragButton int

const (
	ButtonNone DragButton = iota
	ButtonLeft
	ButtonRight
)
