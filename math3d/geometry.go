package math3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used for degeneracy checks throughout the gizmo.
const Epsilon = 1e-6

// IsFiniteFloat reports whether f is neither NaN nor infinite.
func IsFiniteFloat(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// IsFinite reports whether every entry of m is finite.
func IsFinite(m mgl32.Mat4) bool {
	for _, f := range m {
		if !IsFiniteFloat(f) {
			return false
		}
	}
	return true
}

// IsFiniteVec3 reports whether every component of v is finite.
func IsFiniteVec3(v mgl32.Vec3) bool {
	return IsFiniteFloat(v[0]) && IsFiniteFloat(v[1]) && IsFiniteFloat(v[2])
}

// Inverse returns the inverse of m and whether it exists. Non-finite input
// and singular matrices report false.
func Inverse(m mgl32.Mat4) (mgl32.Mat4, bool) {
	if !IsFinite(m) {
		return mgl32.Mat4{}, false
	}
	det := m.Det()
	if !IsFiniteFloat(det) || math32.Abs(det) < 1e-20 {
		return mgl32.Mat4{}, false
	}
	inv := m.Inv()
	if inv == (mgl32.Mat4{}) || !IsFinite(inv) {
		return mgl32.Mat4{}, false
	}
	return inv, true
}

// TransformPoint applies m to p with w = 1 and divides by the resulting w.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] != 0 {
		return v.Vec3().Mul(1 / v[3])
	}
	return v.Vec3()
}

// TransformVector applies the linear part of m to v.
func TransformVector(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

// SafeNormalize normalizes v, returning fallback for near-zero vectors.
func SafeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon || !IsFiniteFloat(l) {
		return fallback
	}
	return v.Mul(1 / l)
}

// Ray is a half line starting at Origin.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Plane stores a normal in xyz and the signed distance along it in w, so
// that dot(n, p) == w for points on the plane.
type Plane = mgl32.Vec4

// BuildPlane returns the plane through point with the given normal.
func BuildPlane(point, normal mgl32.Vec3) Plane {
	n := SafeNormalize(normal, mgl32.Vec3{0, 0, 1})
	return Plane{n[0], n[1], n[2], n.Dot(point)}
}

// PlaneNormal returns the normal of p.
func PlaneNormal(p Plane) mgl32.Vec3 {
	return p.Vec3()
}

// DistanceToPlane returns the signed distance from point to p.
func DistanceToPlane(point mgl32.Vec3, p Plane) float32 {
	return p.Vec3().Dot(point) - p[3]
}

// IntersectRayPlane returns the ray parameter of the intersection, or -1
// when the ray runs parallel to the plane.
func IntersectRayPlane(r Ray, p Plane) float32 {
	n := p.Vec3()
	denom := n.Dot(r.Dir)
	if math32.Abs(denom) < Epsilon {
		return -1
	}
	return -(n.Dot(r.Origin) - p[3]) / denom
}

// ClosestPointOnSegment returns the point of segment [a, b] nearest to p.
func ClosestPointOnSegment(p, a, b mgl32.Vec2) mgl32.Vec2 {
	ab := b.Sub(a)
	l2 := ab.LenSqr()
	if l2 < Epsilon {
		return a
	}
	t := mgl32.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return a.Add(ab.Mul(t))
}

// DistanceToSegment returns the distance from p to segment [a, b].
func DistanceToSegment(p, a, b mgl32.Vec2) float32 {
	return p.Sub(ClosestPointOnSegment(p, a, b)).Len()
}

// PointInConvexPolygon reports whether p lies inside the polygon, in either
// winding order.
func PointInConvexPolygon(p mgl32.Vec2, poly []mgl32.Vec2) bool {
	if len(poly) < 3 {
		return false
	}
	var sign float32
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		c := Cross2(b.Sub(a), p.Sub(a))
		if c == 0 {
			continue
		}
		if sign == 0 {
			sign = c
			continue
		}
		if (c > 0) != (sign > 0) {
			return false
		}
	}
	return true
}

// Cross2 is the z component of the cross product of two 2D vectors.
func Cross2(a, b mgl32.Vec2) float32 {
	return a[0]*b[1] - a[1]*b[0]
}

// PolygonArea returns the signed area of a 2D polygon.
func PolygonArea(poly []mgl32.Vec2) float32 {
	var area float32
	for i := range poly {
		area += Cross2(poly[i], poly[(i+1)%len(poly)])
	}
	return area * 0.5
}

// ExtractFrustumPlanes returns the six normalized clip planes of viewProj in
// the order left, right, bottom, top, near, far. Points inside satisfy
// dot(xyz, p) + w >= 0.
func ExtractFrustumPlanes(vp mgl32.Mat4) [6]mgl32.Vec4 {
	row3 := vp.Row(3)
	planes := [6]mgl32.Vec4{
		row3.Add(vp.Row(0)),
		row3.Sub(vp.Row(0)),
		row3.Add(vp.Row(1)),
		row3.Sub(vp.Row(1)),
		row3.Add(vp.Row(2)),
		row3.Sub(vp.Row(2)),
	}
	for i := range planes {
		l := planes[i].Vec3().Len()
		if l > 0 {
			planes[i] = planes[i].Mul(1 / l)
		}
	}
	return planes
}

// ClipSegment clips segment [a, b] against the planes. It returns false
// when nothing of the segment is left.
func ClipSegment(planes [6]mgl32.Vec4, a, b mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, bool) {
	for _, p := range planes {
		da := p.Vec3().Dot(a) + p[3]
		db := p.Vec3().Dot(b) + p[3]
		if da < 0 && db < 0 {
			return a, b, false
		}
		if da < 0 || db < 0 {
			t := da / (da - db)
			hit := a.Add(b.Sub(a).Mul(t))
			if da < 0 {
				a = hit
			} else {
				b = hit
			}
		}
	}
	return a, b, true
}

// SnapValue rounds value to the nearest multiple of step. Exact halves
// round away from zero. A non-positive step leaves value unchanged.
func SnapValue(value, step float32) float32 {
	if step <= Epsilon {
		return value
	}
	return math32.Round(value/step) * step
}

// SnapVec3 applies SnapValue per component.
func SnapVec3(v, step mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{SnapValue(v[0], step[0]), SnapValue(v[1], step[1]), SnapValue(v[2], step[2])}
}

// PointInQuad reports whether p lies inside the convex quad a, b, c, d.
func PointInQuad(p, a, b, c, d mgl32.Vec2) bool {
	return PointInConvexPolygon(p, []mgl32.Vec2{a, b, c, d})
}
