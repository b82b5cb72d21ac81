package gizmo

import (
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
)

type dragPhase int

const (
	dragIdle dragPhase = iota
	dragCapturing
)

// pointerEvent is what the drag state machine consumes each call.
type pointerEvent struct {
	id          int64
	down        bool
	pressed     bool
	hover       candidate
	hovering    bool
	canActivate bool
}

type transition int

const (
	transitionNone transition = iota
	transitionBegin
	transitionContinue
	transitionEnd
)

// dragSnapshot is the model and pick state captured when a drag begins.
// All per-frame updates are computed against it, never incrementally
// against the previous frame's matrix.
type dragSnapshot struct {
	model        mgl32.Mat4
	modelInv     mgl32.Mat4
	position     mgl32.Vec3
	basis        [3]mgl32.Vec3
	scale        mgl32.Vec3
	mode         Mode
	screenFactor float32

	plane math3d.Plane
	hit   mgl32.Vec3
	mouse mgl32.Vec2

	axisDir      [3]mgl32.Vec3
	axisVisible  [3]bool
	planeVisible [3]bool
}

// dragState is the only engine state that outlives a frame. At most one
// handle is captured per Gizmo; owner scopes the capture to the gizmo
// identity that started it.
type dragState struct {
	phase  dragPhase
	owner  int64
	handle Handle
	start  dragSnapshot

	// translation
	offset mgl32.Vec3
	// rotation
	axis    mgl32.Vec3
	lastVec mgl32.Vec3
	angle   float32
	snapped float32
	// scale
	ratio mgl32.Vec3
	// bounds
	bounds boundsDrag
}

// advance moves the machine one step. Begin requires a fresh press over a
// handle; the capture ends as soon as the button is no longer held.
func (d *dragState) advance(ev pointerEvent) transition {
	switch d.phase {
	case dragIdle:
		if ev.pressed && ev.down && ev.canActivate && ev.hovering {
			d.phase = dragCapturing
			d.owner = ev.id
			d.handle = ev.hover.handle
			return transitionBegin
		}
	case dragCapturing:
		if d.owner != ev.id {
			return transitionNone
		}
		if !ev.down {
			return transitionEnd
		}
		return transitionContinue
	}
	return transitionNone
}

// capturing reports whether id holds the capture.
func (d *dragState) capturing(id int64) bool {
	return d.phase == dragCapturing && d.owner == id
}

func (d *dragState) reset() {
	*d = dragState{}
}

func (c *manipContext) snapshot(mode Mode) dragSnapshot {
	return dragSnapshot{
		model:        c.model,
		modelInv:     c.modelInv,
		position:     c.position,
		basis:        c.basis,
		scale:        c.scale,
		mode:         mode,
		screenFactor: c.screenFactor,
		mouse:        c.mouse,
		axisDir:      c.axisDir,
		axisVisible:  c.axisVisible,
		planeVisible: c.planeVisible,
	}
}

// restoreAxes puts the axis layout frozen at drag start back into c so
// handles do not flip under the pointer mid-drag.
func (c *manipContext) restoreAxes(s *dragSnapshot) {
	c.axisDir = s.axisDir
	c.axisVisible = s.axisVisible
	c.planeVisible = s.planeVisible
}

// intersectDragPlane returns where the pointer ray meets the drag plane.
func (c *manipContext) intersectDragPlane(s *dragSnapshot) (mgl32.Vec3, bool) {
	t := math3d.IntersectRayPlane(c.ray, s.plane)
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return c.ray.At(t), true
}

// beginPlaneDrag anchors a drag on the plane through the gizmo origin with
// the given normal.
func (c *manipContext) beginPlaneDrag(s *dragSnapshot, normal mgl32.Vec3) bool {
	return c.beginPlaneDragAt(s, c.position, normal)
}

func (c *manipContext) beginPlaneDragAt(s *dragSnapshot, point, normal mgl32.Vec3) bool {
	s.plane = math3d.BuildPlane(point, normal)
	hit, ok := c.intersectDragPlane(s)
	if !ok {
		return false
	}
	s.hit = hit
	return true
}
