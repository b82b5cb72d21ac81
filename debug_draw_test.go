package gizmo

import (
	"testing"
	"time"

	"github.com/gekko3d/gizmo/draw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func countKind(l *draw.List, k draw.Kind) int {
	n := 0
	for _, c := range l.Commands() {
		if c.Kind == k {
			n++
		}
	}
	return n
}

func TestDrawCubeCullsBackFaces(t *testing.T) {
	g := New()
	view, proj := testCamera()
	f := g.BeginFrame(testInput())
	f.DrawCube(view, proj, mgl32.Ident4())
	assert.Equal(t, 3, countKind(g.Overlay(), draw.KindConvexPolyFilled))

	f.DrawCubes(view, proj, mgl32.Translate3D(2, 0, 0), mgl32.Translate3D(-2, 0, 0))
	assert.Equal(t, 9, countKind(g.Overlay(), draw.KindConvexPolyFilled))
	f.DrawCubes(view, proj)
	assert.Equal(t, 9, g.Overlay().Len())
}

func TestDrawGrid(t *testing.T) {
	g := New()
	view, proj := testCamera()
	f := g.BeginFrame(testInput())
	f.DrawGrid(view, proj, mgl32.Ident4(), 10)

	lines := g.Overlay().Commands()
	assert.NotEmpty(t, lines)
	assert.LessOrEqual(t, len(lines), 42)

	axis, major := 0, 0
	for _, c := range lines {
		assert.Equal(t, draw.KindLine, c.Kind)
		switch c.Thickness {
		case gridAxisThickness:
			axis++
		case gridMajorThickness:
			major++
		}
	}
	assert.Equal(t, 2, axis)
	assert.LessOrEqual(t, major, 4)
	assert.Zero(t, g.Overlay().Dropped())
}

func TestDrawGridIgnoresBadSize(t *testing.T) {
	g := New()
	view, proj := testCamera()
	f := g.BeginFrame(testInput())
	f.DrawGrid(view, proj, mgl32.Ident4(), 0)
	f.DrawGrid(view, proj, mgl32.Ident4(), -3)
	assert.Zero(t, g.Overlay().Len())
}

func TestDrawGridHugeSizeIsBounded(t *testing.T) {
	g := New()
	view, proj := testCamera()
	f := g.BeginFrame(testInput())

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.DrawGrid(view, proj, mgl32.Ident4(), 1e8)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DrawGrid did not return")
	}
	assert.LessOrEqual(t, g.Overlay().Len()+g.Overlay().Dropped(), 2*(maxGridSteps+1))
}
