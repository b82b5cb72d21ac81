package gizmo

import (
	"testing"

	"github.com/gekko3d/gizmo/draw"
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cubePos        = mgl32.Vec2{testWidth - 128, 0}
	cubeSize       = mgl32.Vec2{128, 128}
	cubeBackground = draw.ColorU32(0x10101010)
)

func cubeScreenOf(t *testing.T, view mgl32.Mat4, p mgl32.Vec3) mgl32.Vec2 {
	t.Helper()
	cam := newCubeCamera(view.Inv(), Rect{X: cubePos[0], Y: cubePos[1], Width: cubeSize[0], Height: cubeSize[1]})
	s, ok := projectToRect(cam.viewProj, p, cam.rect)
	require.True(t, ok)
	return s
}

func clickCube(t *testing.T, g *Gizmo, in *Input, view *mgl32.Mat4, distance float32, at mgl32.Vec2) bool {
	in.MoveMouse(at)
	in.Press(MouseButtonLeft, true)
	assert.False(t, g.BeginFrame(in).ViewManipulateDetailed(view, distance, cubePos, cubeSize, cubeBackground))
	in.Press(MouseButtonLeft, false)
	return g.BeginFrame(in).ViewManipulateDetailed(view, distance, cubePos, cubeSize, cubeBackground)
}

func TestBoxDirection(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, boxDirection(boxIndex([3]int{0, 1, 1})))
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, boxDirection(boxIndex([3]int{1, 2, 1})))
	corner := boxDirection(boxIndex([3]int{0, 0, 0}))
	assert.InDelta(t, 1, corner.Len(), 1e-6)
	assert.InDelta(t, corner.X(), corner.Z(), 1e-7)
}

func TestCubePanelsFacingCamera(t *testing.T) {
	view, _ := testCamera()
	cam := newCubeCamera(view.Inv(), Rect{Width: 128, Height: 128})
	panels := cam.panels()
	// three faces of nine panels each are visible from a corner view
	assert.Len(t, panels, 27)
	for _, p := range panels {
		assert.Contains(t, []int{0, 2, 4}, p.face)
	}
}

func TestViewCubeFaceClick(t *testing.T) {
	g := New()
	in := testInput()
	view, _ := testCamera()
	distance := mgl32.Vec3{8, 8, 8}.Len()

	at := cubeScreenOf(t, view, mgl32.Vec3{0.5, 0, 0})
	require.True(t, clickCube(t, g, in, &view, distance, at))

	inv := view.Inv()
	eye := inv.Col(3).Vec3()
	forward := inv.Col(2).Vec3().Mul(-1)
	assert.True(t, eye.ApproxEqualThreshold(mgl32.Vec3{distance, 0, 0}, 1e-3), "eye %v", eye)
	assert.True(t, forward.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-5), "forward %v", forward)
	assert.InDelta(t, distance, eye.Len(), 1e-3)
}

func TestViewCubeTopClickKeepsUp(t *testing.T) {
	g := New()
	in := testInput()
	view, _ := testCamera()
	distance := mgl32.Vec3{8, 8, 8}.Len()

	at := cubeScreenOf(t, view, mgl32.Vec3{0, 0.5, 0})
	require.True(t, clickCube(t, g, in, &view, distance, at))
	assert.True(t, math3d.IsFinite(view))

	inv := view.Inv()
	assert.True(t, inv.Col(3).Vec3().ApproxEqualThreshold(mgl32.Vec3{0, distance, 0}, 1e-3))
	up := inv.Col(1).Vec3()
	assert.InDelta(t, 0, up.Y(), 1e-5)
	assert.InDelta(t, 1, up.Len(), 1e-5)
}

func TestViewCubeTransition(t *testing.T) {
	style := DefaultStyle()
	style.ViewTransition = 0.5
	g := New(WithStyle(style))
	in := testInput()
	view, _ := testCamera()
	start := view
	distance := mgl32.Vec3{8, 8, 8}.Len()

	at := cubeScreenOf(t, view, mgl32.Vec3{0.5, 0, 0})
	assert.False(t, clickCube(t, g, in, &view, distance, at))
	assert.Equal(t, start, view)

	in.DeltaTime = 0.2
	for i := 0; i < 3; i++ {
		assert.True(t, g.BeginFrame(in).ViewManipulateDetailed(&view, distance, cubePos, cubeSize, draw.Color{}))
	}
	assert.Nil(t, g.cube.anim)
	eye := view.Inv().Col(3).Vec3()
	assert.True(t, eye.ApproxEqualThreshold(mgl32.Vec3{distance, 0, 0}, 1e-3), "eye %v", eye)
}

func TestViewCubeDragOrbits(t *testing.T) {
	g := New()
	in := testInput()
	view, _ := testCamera()
	distance := mgl32.Vec3{8, 8, 8}.Len()

	in.MoveMouse(cubePos.Add(mgl32.Vec2{4, 4}))
	in.Press(MouseButtonLeft, true)
	g.BeginFrame(in).ViewManipulate(&view, distance, cubePos, cubeSize, draw.Color{})

	in.MoveMouse(cubePos.Add(mgl32.Vec2{40, 4}))
	in.Press(MouseButtonLeft, true)
	assert.True(t, g.BeginFrame(in).ViewManipulateDetailed(&view, distance, cubePos, cubeSize, draw.Color{}))
	assert.Equal(t, cubeDragging, g.cube.phase)

	eye := view.Inv().Col(3).Vec3()
	assert.InDelta(t, distance, eye.Len(), 1e-3)
	assert.InDelta(t, 8, eye.Y(), 1e-3, "yaw keeps height")

	in.Press(MouseButtonLeft, false)
	assert.False(t, g.BeginFrame(in).ViewManipulateDetailed(&view, distance, cubePos, cubeSize, draw.Color{}))
	assert.Equal(t, cubeIdle, g.cube.phase)
}
