package math3d

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeRecomposeRoundTrip(t *testing.T) {
	cases := []struct {
		name                         string
		translation, rotation, scale mgl32.Vec3
	}{
		{"identity", mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}},
		{"translated", mgl32.Vec3{1, -2, 3}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}},
		{"rotated x", mgl32.Vec3{}, mgl32.Vec3{30, 0, 0}, mgl32.Vec3{1, 1, 1}},
		{"rotated all", mgl32.Vec3{4, 5, 6}, mgl32.Vec3{10, -20, 45}, mgl32.Vec3{1, 1, 1}},
		{"scaled", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-60, 35, 120}, mgl32.Vec3{2, 0.5, 3}},
		{"negative angles", mgl32.Vec3{-7, 0.25, 9}, mgl32.Vec3{-170, -80, -179}, mgl32.Vec3{0.1, 10, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := RecomposeMatrixFromComponents(tc.translation, tc.rotation, tc.scale)
			tr, rot, sc := DecomposeMatrixToComponents(m)
			assert.True(t, tr.ApproxEqualThreshold(tc.translation, 1e-4), "translation %v != %v", tr, tc.translation)
			assert.True(t, rot.ApproxEqualThreshold(tc.rotation, 1e-3), "rotation %v != %v", rot, tc.rotation)
			assert.True(t, sc.ApproxEqualThreshold(tc.scale, 1e-4), "scale %v != %v", sc, tc.scale)
		})
	}
}

func TestRecomposeOrder(t *testing.T) {
	m := RecomposeMatrixFromComponents(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 90}, mgl32.Vec3{2, 1, 1})
	// scaled X axis, rotated onto +Y, then translated
	p := TransformPoint(m, mgl32.Vec3{1, 0, 0})
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{1, 4, 3}, 1e-5), "got %v", p)
}

func TestPerspectiveNearPlane(t *testing.T) {
	near, far := float32(0.1), float32(100)
	proj := Perspective(45, 16.0/9.0, near, far)

	clip := proj.Mul4x1(mgl32.Vec4{0, 0, -near, 1})
	require.NotZero(t, clip[3])
	ndc := clip.Vec3().Mul(1 / clip[3])
	assert.InDelta(t, -1, ndc[2], 1e-5)
	assert.InDelta(t, 0, ndc[0], 1e-6)

	clip = proj.Mul4x1(mgl32.Vec4{0, 0, -far, 1})
	assert.InDelta(t, 1, clip[2]/clip[3], 1e-4)
}

func TestPerspectiveUsesHalfAngle(t *testing.T) {
	proj := Perspective(90, 1, 1, 10)
	// tan(45deg) == 1, so a point at y == -z lands on the top edge
	clip := proj.Mul4x1(mgl32.Vec4{0, 2, -2, 1})
	assert.InDelta(t, 1, clip[1]/clip[3], 1e-5)
	assert.True(t, IsPerspective(proj))
}

func TestOrthographicIsAffine(t *testing.T) {
	proj := Orthographic(-4, 4, -3, 3, -10, 10)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, proj.Row(3))
	assert.False(t, IsPerspective(proj))

	// parallel segments stay parallel after projection
	a0, a1 := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 2, -3}
	b0, b1 := mgl32.Vec3{2, -1, 4}, mgl32.Vec3{3, 1, 1}
	da := TransformPoint(proj, a1).Sub(TransformPoint(proj, a0))
	db := TransformPoint(proj, b1).Sub(TransformPoint(proj, b0))
	assert.InDelta(t, 0, da.Cross(db).Len(), 1e-5)

	center := TransformPoint(proj, mgl32.Vec3{0, 0, 0})
	assert.True(t, center.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0}, 1e-6))
}

func TestFrustumDegenerateIsNonFinite(t *testing.T) {
	m := Frustum(1, 1, -1, 1, 0.1, 10)
	assert.False(t, IsFinite(m))
}

func TestInverse(t *testing.T) {
	m := RecomposeMatrixFromComponents(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{10, 20, 30}, mgl32.Vec3{1, 2, 3})
	inv, ok := Inverse(m)
	require.True(t, ok)
	assert.True(t, m.Mul4(inv).ApproxEqualThreshold(mgl32.Ident4(), 1e-5))

	_, ok = Inverse(mgl32.Scale3D(1, 0, 1))
	assert.False(t, ok)

	nan := mgl32.Ident4()
	nan[5] = math32.NaN()
	_, ok = Inverse(nan)
	assert.False(t, ok)
}

func TestIntersectRayPlane(t *testing.T) {
	plane := BuildPlane(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 1, 0})
	r := Ray{Origin: mgl32.Vec3{1, 5, 1}, Dir: mgl32.Vec3{0, -1, 0}}
	tt := IntersectRayPlane(r, plane)
	assert.InDelta(t, 3, tt, 1e-6)
	assert.True(t, r.At(tt).ApproxEqualThreshold(mgl32.Vec3{1, 2, 1}, 1e-6))

	parallel := Ray{Origin: mgl32.Vec3{0, 5, 0}, Dir: mgl32.Vec3{1, 0, 0}}
	assert.Equal(t, float32(-1), IntersectRayPlane(parallel, plane))
	assert.InDelta(t, 3, DistanceToPlane(mgl32.Vec3{0, 5, 0}, plane), 1e-6)
}

func TestSegmentHelpers(t *testing.T) {
	a, b := mgl32.Vec2{0, 0}, mgl32.Vec2{10, 0}
	assert.Equal(t, mgl32.Vec2{5, 0}, ClosestPointOnSegment(mgl32.Vec2{5, 3}, a, b))
	assert.Equal(t, mgl32.Vec2{10, 0}, ClosestPointOnSegment(mgl32.Vec2{20, 3}, a, b))
	assert.InDelta(t, 3, DistanceToSegment(mgl32.Vec2{5, -3}, a, b), 1e-6)

	quad := []mgl32.Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	assert.True(t, PointInConvexPolygon(mgl32.Vec2{2, 2}, quad))
	assert.False(t, PointInConvexPolygon(mgl32.Vec2{5, 2}, quad))
	assert.InDelta(t, 16, PolygonArea(quad), 1e-6)
}

func TestClipSegment(t *testing.T) {
	vp := Orthographic(-1, 1, -1, 1, -1, 1)
	planes := ExtractFrustumPlanes(vp)

	a, b, ok := ClipSegment(planes, mgl32.Vec3{-3, 0, 0}, mgl32.Vec3{3, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, -1, a[0], 1e-5)
	assert.InDelta(t, 1, b[0], 1e-5)

	_, _, ok = ClipSegment(planes, mgl32.Vec3{2, 2, 0}, mgl32.Vec3{3, 2, 0})
	assert.False(t, ok)
}

func TestSnapValue(t *testing.T) {
	cases := []struct {
		value, step, want float32
	}{
		{2.37, 1, 2},
		{2.5, 1, 3},
		{-2.5, 1, -3},
		{0.49, 1, 0},
		{0.74, 0.5, 0.5},
		{0.75, 0.5, 1},
		{3.3, 0, 3.3},
		{-1.26, 0.25, -1.25},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, SnapValue(tc.value, tc.step), 1e-6, "snap(%v, %v)", tc.value, tc.step)
	}
	assert.Equal(t, mgl32.Vec3{2, 0.5, 7}, SnapVec3(mgl32.Vec3{2.2, 0.6, 7}, mgl32.Vec3{1, 0.5, 0}))
}

func TestPointInQuad(t *testing.T) {
	a, b, c, d := mgl32.Vec2{0, 0}, mgl32.Vec2{4, 0}, mgl32.Vec2{4, 2}, mgl32.Vec2{0, 2}
	assert.True(t, PointInQuad(mgl32.Vec2{1, 1}, a, b, c, d))
	assert.True(t, PointInQuad(mgl32.Vec2{1, 1}, d, c, b, a))
	assert.False(t, PointInQuad(mgl32.Vec2{5, 1}, a, b, c, d))
}
