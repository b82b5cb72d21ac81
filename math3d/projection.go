// Package math3d holds the small set of matrix and geometry helpers the
// gizmo needs on top of mgl32: projection construction, transform
// decomposition, rays, planes and frustum clipping.
package math3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Frustum builds an OpenGL-style perspective frustum matrix.
// Degenerate extents (right == left, top == bottom, zfar == znear) yield
// non-finite entries; callers must pass a non-empty volume.
func Frustum(left, right, bottom, top, znear, zfar float32) mgl32.Mat4 {
	rml, tmb, fmn := right-left, top-bottom, zfar-znear

	var m mgl32.Mat4
	m.Set(0, 0, 2*znear/rml)
	m.Set(1, 1, 2*znear/tmb)
	m.Set(0, 2, (right+left)/rml)
	m.Set(1, 2, (top+bottom)/tmb)
	m.Set(2, 2, -(zfar+znear)/fmn)
	m.Set(3, 2, -1)
	m.Set(2, 3, -2*zfar*znear/fmn)
	return m
}

// Perspective builds a symmetric frustum from a vertical field of view in
// degrees.
func Perspective(fovyDegrees, aspect, znear, zfar float32) mgl32.Mat4 {
	ymax := znear * math32.Tan(mgl32.DegToRad(fovyDegrees)*0.5)
	xmax := ymax * aspect
	return Frustum(-xmax, xmax, -ymax, ymax, znear, zfar)
}

// Orthographic builds an OpenGL-style orthographic projection. The result
// is affine: its last row is [0 0 0 1].
func Orthographic(left, right, bottom, top, znear, zfar float32) mgl32.Mat4 {
	rml, tmb, fmn := right-left, top-bottom, zfar-znear

	m := mgl32.Ident4()
	m.Set(0, 0, 2/rml)
	m.Set(1, 1, 2/tmb)
	m.Set(2, 2, -2/fmn)
	m.Set(0, 3, -(right+left)/rml)
	m.Set(1, 3, -(top+bottom)/tmb)
	m.Set(2, 3, -(zfar+znear)/fmn)
	return m
}

// IsPerspective reports whether the projection divides by view depth.
func IsPerspective(proj mgl32.Mat4) bool {
	return proj.At(3, 2) != 0 || proj.At(3, 3) != 1
}
