package draw

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDropsNonFinitePrimitives(t *testing.T) {
	l := NewList()
	red := Color{1, 0, 0, 1}

	l.AddLine(mgl32.Vec2{0, 0}, mgl32.Vec2{10, 10}, red, 2)
	l.AddLine(mgl32.Vec2{math32.NaN(), 0}, mgl32.Vec2{10, 10}, red, 2)
	l.AddCircle(mgl32.Vec2{5, 5}, math32.Inf(1), red, 0, 1)
	l.AddTriangleFilled(mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{0, math32.Inf(-1)}, red)

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 3, l.Dropped())
	assert.Equal(t, KindLine, l.Commands()[0].Kind)

	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.Dropped())
}

func TestListClipStack(t *testing.T) {
	l := NewList()
	assert.Equal(t, NoClip, l.CurrentClip())

	l.PushClipRect(mgl32.Vec2{10, 10}, mgl32.Vec2{100, 100})
	l.PushClipRect(mgl32.Vec2{50, 0}, mgl32.Vec2{200, 60})
	l.AddRectFilled(mgl32.Vec2{0, 0}, mgl32.Vec2{5, 5}, Color{1, 1, 1, 1})
	want := ClipRect{Min: mgl32.Vec2{50, 10}, Max: mgl32.Vec2{100, 60}}
	assert.Equal(t, want, l.Commands()[0].Clip)

	l.PopClipRect()
	l.PopClipRect()
	l.PopClipRect()
	assert.Equal(t, NoClip, l.CurrentClip())
}

func TestColorU32(t *testing.T) {
	c := ColorU32(0xFF0000FF)
	assert.Equal(t, Color{1, 0, 0, 1}, c)
	assert.InDelta(t, 16.0/255.0, ColorU32(0x10101010)[3], 1e-6)
	assert.Equal(t, float32(0.5), c.WithAlpha(0.5)[3])
}

func TestTessellate(t *testing.T) {
	l := NewList()
	white := Color{1, 1, 1, 1}
	l.AddLine(mgl32.Vec2{0, 0}, mgl32.Vec2{10, 0}, white, 2)
	l.AddRectFilled(mgl32.Vec2{0, 0}, mgl32.Vec2{4, 4}, white)
	l.PushClipRect(mgl32.Vec2{0, 0}, mgl32.Vec2{50, 50})
	l.AddCircleFilled(mgl32.Vec2{20, 20}, 5, white, 12)

	var m Mesh
	m.Tessellate(nil, l)

	require.Len(t, m.Batches, 2)
	assert.Equal(t, uint32(12), m.Batches[0].Count)
	assert.Equal(t, uint32(30), m.Batches[1].Count)
	assert.Equal(t, uint32(12), m.Batches[1].First)
	assert.Len(t, m.Vertices, 42)

	// the segment is 2 px thick around y == 0
	for _, v := range m.Vertices[:6] {
		assert.InDelta(t, 1, math32.Abs(v.Pos[1]), 1e-5)
	}
}

func TestAtlasText(t *testing.T) {
	atlas, err := NewDefaultAtlas(DefaultFontSize)
	require.NoError(t, err)
	require.Contains(t, atlas.Glyphs, 'A')

	w, h := atlas.MeasureText("AB\nA")
	assert.Greater(t, w, float32(0))
	assert.InDelta(t, 2*atlas.LineHeight(), h, 1e-6)
	assert.Equal(t, uint8(0xff), atlas.Image.Pix[0])

	l := NewList()
	l.AddText(mgl32.Vec2{0, 0}, Color{1, 1, 1, 1}, "Hi")
	var m Mesh
	m.Tessellate(atlas, l)
	assert.Len(t, m.Vertices, 12)
}
