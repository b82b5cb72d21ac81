package gizmo

import (
	"testing"

	"github.com/gekko3d/gizmo/draw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestStaleFramePanics(t *testing.T) {
	g := New()
	in := testInput()
	old := g.BeginFrame(in)
	cur := g.BeginFrame(in)

	assert.PanicsWithValue(t, ErrNoActiveFrame, func() { old.IsOver() })
	assert.PanicsWithValue(t, ErrNoActiveFrame, func() {
		model := mgl32.Ident4()
		old.Manipulate(mgl32.Ident4(), mgl32.Ident4(), Translate, World, &model, ManipulateOptions{})
	})
	var nilFrame *Frame
	assert.PanicsWithValue(t, ErrNoActiveFrame, func() { nilFrame.IsUsing() })
	assert.NotPanics(t, func() { cur.IsOver() })
}

func TestBeginFrameResetsPerFrameState(t *testing.T) {
	g := New()
	in := testInput()
	f := g.BeginFrame(in)
	window := draw.NewList()
	f.SetDrawList(window)
	f.SetRect(10, 10, 100, 100)
	f.SetOrthographic(true)
	f.SetID(7)
	g.Overlay().AddLine(mgl32.Vec2{}, mgl32.Vec2{1, 1}, draw.Color{1, 1, 1, 1}, 1)

	f = g.BeginFrame(in)
	assert.Same(t, g.Overlay(), f.DrawList())
	assert.Zero(t, g.Overlay().Len())
	assert.Equal(t, Rect{Width: testWidth, Height: testHeight}, f.Rect())
	assert.False(t, f.ortho)
	assert.Zero(t, f.id)
}

func TestSetDrawListClipsToRect(t *testing.T) {
	g := New()
	f := g.BeginFrame(testInput())
	window := draw.NewList()
	f.SetDrawList(window)
	f.SetRect(100, 50, 400, 300)

	view, proj := testCamera()
	model := mgl32.Ident4()
	f.Manipulate(view, proj, Translate, World, &model, ManipulateOptions{})

	assert.Zero(t, g.Overlay().Len())
	assert.NotZero(t, window.Len())
	for _, cmd := range window.Commands() {
		assert.Equal(t, mgl32.Vec2{100, 50}, cmd.Clip.Min)
		assert.Equal(t, mgl32.Vec2{500, 350}, cmd.Clip.Max)
	}

	f.SetDrawList(nil)
	assert.Same(t, g.Overlay(), f.DrawList())
}

func TestIsOver(t *testing.T) {
	g := New()
	c := testContext(mgl32.Ident4(), World)
	view, proj := testCamera()
	model := mgl32.Ident4()

	in := testInput()
	in.MoveMouse(c.center)
	f := g.BeginFrame(in)
	assert.False(t, f.IsOver())
	f.Manipulate(view, proj, Translate, World, &model, ManipulateOptions{})
	assert.True(t, f.IsOver())
	assert.True(t, f.IsOverOperation(Translate))
	assert.True(t, f.IsOverOperation(Scale))
	assert.False(t, f.IsOverOperation(Bounds))
	assert.True(t, f.WantCaptureMouse())

	in.MoveMouse(mgl32.Vec2{3, 3})
	f = g.BeginFrame(in)
	f.Manipulate(view, proj, Translate, World, &model, ManipulateOptions{})
	assert.False(t, f.IsOver())
	assert.False(t, f.IsOverOperation(Translate))
}

func TestRectFromInput(t *testing.T) {
	in := &Input{DisplayWidth: 800, DisplayHeight: 600, WindowPos: mgl32.Vec2{20, 30}, WindowSize: mgl32.Vec2{200, 100}}
	assert.Equal(t, Rect{Width: 800, Height: 600}, RectFromDisplay(in))
	r := RectFromWindow(in)
	assert.Equal(t, Rect{X: 20, Y: 30, Width: 200, Height: 100}, r)
	assert.Equal(t, float32(2), r.Aspect())
	assert.True(t, r.Contains(mgl32.Vec2{220, 130}))
	assert.False(t, r.Contains(mgl32.Vec2{19, 30}))
	assert.Equal(t, float32(1), Rect{}.Aspect())
}

func TestInputEdges(t *testing.T) {
	var in Input
	in.Press(MouseButtonLeft, true)
	assert.True(t, in.Clicked(MouseButtonLeft))
	in.Press(MouseButtonLeft, true)
	assert.False(t, in.Clicked(MouseButtonLeft))
	assert.True(t, in.Down(MouseButtonLeft))
	in.Press(MouseButtonLeft, false)
	assert.True(t, in.Released(MouseButtonLeft))

	in.MoveMouse(mgl32.Vec2{10, 5})
	in.MoveMouse(mgl32.Vec2{12, 9})
	assert.Equal(t, mgl32.Vec2{2, 4}, in.MouseDelta)
}
