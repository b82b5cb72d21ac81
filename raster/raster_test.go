package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/gekko3d/gizmo/draw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPrimitives(t *testing.T) {
	c := New(64, 64, draw.Color{0, 0, 0, 1})
	l := draw.NewList()
	l.AddRectFilled(mgl32.Vec2{4, 4}, mgl32.Vec2{20, 20}, draw.Color{1, 0, 0, 1})
	l.AddLine(mgl32.Vec2{0, 40}, mgl32.Vec2{64, 40}, draw.Color{0, 1, 0, 1}, 3)
	l.AddCircleFilled(mgl32.Vec2{48, 16}, 8, draw.Color{0, 0, 1, 1}, 24)
	c.Render(l)

	assertNear(t, color.RGBA{255, 0, 0, 255}, c.At(12, 12))
	assertNear(t, color.RGBA{0, 255, 0, 255}, c.At(30, 40))
	assertNear(t, color.RGBA{0, 0, 255, 255}, c.At(48, 16))
	assertNear(t, color.RGBA{0, 0, 0, 255}, c.At(30, 10))
}

func TestRenderRespectsClip(t *testing.T) {
	c := New(32, 32, draw.Color{0, 0, 0, 1})
	l := draw.NewList()
	l.PushClipRect(mgl32.Vec2{0, 0}, mgl32.Vec2{16, 32})
	l.AddRectFilled(mgl32.Vec2{0, 0}, mgl32.Vec2{32, 32}, draw.Color{1, 1, 1, 1})
	l.PopClipRect()
	c.Render(l)

	assertNear(t, color.RGBA{255, 255, 255, 255}, c.At(8, 8))
	assertNear(t, color.RGBA{0, 0, 0, 255}, c.At(24, 8))
}

func TestRenderText(t *testing.T) {
	c := New(64, 20, draw.Color{0, 0, 0, 1})
	l := draw.NewList()
	l.AddText(mgl32.Vec2{2, 2}, draw.Color{1, 1, 1, 1}, "XYZ")
	c.Render(l)

	lit := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 64; x++ {
			if c.At(x, y).R > 0 {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 10)
}

func TestWritePNG(t *testing.T) {
	c := New(8, 8, draw.Color{0.5, 0.5, 0.5, 1})
	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func assertNear(t *testing.T, want, got color.RGBA) {
	t.Helper()
	near := func(a, b uint8) bool { d := int(a) - int(b); return d <= 2 && d >= -2 }
	assert.True(t, near(want.R, got.R) && near(want.G, got.G) && near(want.B, got.B) && near(want.A, got.A), "want %v got %v", want, got)
}
