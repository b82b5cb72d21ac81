package gizmo

import (
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
)

// Operation selects which handles Manipulate shows and reacts to.
type Operation int

const (
	Translate Operation = iota
	Rotate
	Scale
	// Bounds only shows the bounding box handles; it does nothing without
	// LocalBounds.
	Bounds
)

func (op Operation) String() string {
	switch op {
	case Translate:
		return "translate"
	case Rotate:
		return "rotate"
	case Scale:
		return "scale"
	case Bounds:
		return "bounds"
	}
	return "unknown"
}

// Mode selects the frame translation and rotation axes are expressed in.
// Scale always works on the model's local axes.
type Mode int

const (
	Local Mode = iota
	World
)

func (m Mode) String() string {
	if m == World {
		return "world"
	}
	return "local"
}

// Projection describes how the builder synthesizes a projection matrix
// for the current viewport.
type Projection interface {
	Matrix(r Rect) mgl32.Mat4
	Orthographic() bool
	isProjection()
}

// PerspectiveProjection is a symmetric perspective with a vertical field
// of view in degrees.
type PerspectiveProjection struct {
	Fovy float32
}

const (
	perspectiveNear = 0.1
	perspectiveFar  = 100

	orthographicDepth = 1000
)

func (p PerspectiveProjection) Matrix(r Rect) mgl32.Mat4 {
	return math3d.Perspective(p.Fovy, r.Aspect(), perspectiveNear, perspectiveFar)
}

func (PerspectiveProjection) Orthographic() bool { return false }
func (PerspectiveProjection) isProjection()      {}

// OrthographicProjection spans ViewWidth world units either side of the
// view axis horizontally; the height follows the viewport aspect.
type OrthographicProjection struct {
	ViewWidth float32
}

func (p OrthographicProjection) Matrix(r Rect) mgl32.Mat4 {
	w := p.ViewWidth
	h := w
	if r.Width > 0 {
		h = w * r.Height / r.Width
	}
	return math3d.Orthographic(-w, w, -h, h, -orthographicDepth, orthographicDepth)
}

func (OrthographicProjection) Orthographic() bool { return true }
func (OrthographicProjection) isProjection()      {}

// Handle identifies one draggable element of the gizmo.
type Handle int

const (
	HandleNone Handle = iota
	HandleTranslateX
	HandleTranslateY
	HandleTranslateZ
	HandleTranslateYZ
	HandleTranslateZX
	HandleTranslateXY
	HandleTranslateScreen
	HandleRotateX
	HandleRotateY
	HandleRotateZ
	HandleRotateScreen
	HandleScaleX
	HandleScaleY
	HandleScaleZ
	HandleScaleXYZ
	HandleBoundsCorner
	HandleBoundsEdge
)

var handleNames = [...]string{
	"none",
	"translate-x", "translate-y", "translate-z",
	"translate-yz", "translate-zx", "translate-xy", "translate-screen",
	"rotate-x", "rotate-y", "rotate-z", "rotate-screen",
	"scale-x", "scale-y", "scale-z", "scale-xyz",
	"bounds-corner", "bounds-edge",
}

func (h Handle) String() string {
	if h >= 0 && int(h) < len(handleNames) {
		return handleNames[h]
	}
	return "unknown"
}

// Operation returns the operation the handle belongs to.
func (h Handle) Operation() Operation {
	switch {
	case h >= HandleTranslateX && h <= HandleTranslateScreen:
		return Translate
	case h >= HandleRotateX && h <= HandleRotateScreen:
		return Rotate
	case h >= HandleScaleX && h <= HandleScaleXYZ:
		return Scale
	}
	return Bounds
}

// axis returns the axis index of single axis handles and the normal index
// of plane handles, or -1.
func (h Handle) axis() int {
	switch {
	case h >= HandleTranslateX && h <= HandleTranslateZ:
		return int(h - HandleTranslateX)
	case h >= HandleTranslateYZ && h <= HandleTranslateXY:
		return int(h - HandleTranslateYZ)
	case h >= HandleRotateX && h <= HandleRotateZ:
		return int(h - HandleRotateX)
	case h >= HandleScaleX && h <= HandleScaleZ:
		return int(h - HandleScaleX)
	}
	return -1
}

func (h Handle) isPlane() bool {
	return h >= HandleTranslateYZ && h <= HandleTranslateXY
}
