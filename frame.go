package gizmo

import "github.com/gekko3d/gizmo/draw"

// Frame is the per-frame handle returned by Gizmo.BeginFrame. It is only
// valid until the next BeginFrame; any method called on a stale Frame
// panics with ErrNoActiveFrame.
type Frame struct {
	g   *Gizmo
	seq uint64
	in  Input

	rect  Rect
	ortho bool
	list  *draw.List
	id    int64

	// hovered is set once any Manipulate call of this frame had a handle
	// under the pointer.
	hovered bool
	last       *manipContext
	lastBounds *[6]float32
}

func (f *Frame) check() {
	if f == nil || f.g == nil || f.seq != f.g.seq {
		panic(ErrNoActiveFrame)
	}
}

// Input returns the snapshot the frame was started with.
func (f *Frame) Input() *Input {
	f.check()
	return &f.in
}

// SetDrawList redirects output to list, clipped to the current rect. A nil
// list restores the overlay.
func (f *Frame) SetDrawList(list *draw.List) {
	f.check()
	if list == nil {
		list = f.g.overlay
	}
	f.list = list
}

// DrawList returns the list commands currently go to.
func (f *Frame) DrawList() *draw.List {
	f.check()
	return f.list
}

func (f *Frame) SetRect(x, y, width, height float32) {
	f.check()
	f.rect = Rect{X: x, Y: y, Width: width, Height: height}
}

func (f *Frame) Rect() Rect {
	f.check()
	return f.rect
}

func (f *Frame) SetOrthographic(ortho bool) {
	f.check()
	f.ortho = ortho
}

// SetID scopes the following Manipulate calls to one gizmo identity, so
// several transforms can be edited in one frame without sharing a drag.
func (f *Frame) SetID(id int64) {
	f.check()
	f.id = id
}

// Enable turns input handling on or off. The setting sticks across frames;
// disabling during a drag ends it.
func (f *Frame) Enable(enabled bool) {
	f.check()
	g := f.g
	if !enabled && g.drag.phase == dragCapturing {
		g.ResetDrag()
	}
	g.enabled = enabled
}

// AllowAxisFlip controls whether axes flip to face the viewer.
func (f *Frame) AllowAxisFlip(allow bool) {
	f.check()
	f.g.allowAxisFlip = allow
}

// IsUsing reports whether a handle of the current identity is captured.
func (f *Frame) IsUsing() bool {
	f.check()
	return f.g.drag.capturing(f.id)
}

// IsOver reports whether the pointer overlaps any handle drawn so far this
// frame.
func (f *Frame) IsOver() bool {
	f.check()
	return f.hovered
}

// IsOverOperation reports whether the pointer overlaps a handle of op, as
// laid out by the most recent Manipulate call.
func (f *Frame) IsOverOperation(op Operation) bool {
	f.check()
	if f.last == nil {
		return false
	}
	var bounds *[6]float32
	if op == Bounds {
		bounds = f.lastBounds
	}
	return len(f.last.candidates(op, bounds)) > 0
}

// WantCaptureMouse tells the host whether the gizmo consumes the pointer.
func (f *Frame) WantCaptureMouse() bool {
	f.check()
	return f.hovered || f.g.drag.phase == dragCapturing || f.g.cube.phase != cubeIdle
}
