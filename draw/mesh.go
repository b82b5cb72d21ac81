package draw

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the layout consumed by GPU backends: screen position in
// pixels, atlas UV and straight RGBA color.
type Vertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

// Batch is a run of vertices sharing one clip rectangle.
type Batch struct {
	Clip  ClipRect
	First uint32
	Count uint32
}

// Mesh is a triangle list built from a List.
type Mesh struct {
	Vertices []Vertex
	Batches  []Batch
}

// Reset empties the mesh, keeping capacity.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Batches = m.Batches[:0]
}

// Tessellate appends the triangles of every command in lists to m. Text is
// only emitted when atlas is non-nil.
func (m *Mesh) Tessellate(atlas *Atlas, lists ...*List) {
	t := tessellator{mesh: m, atlas: atlas}
	if atlas != nil {
		t.white = atlas.WhiteUV
	}
	for _, l := range lists {
		if l == nil {
			continue
		}
		for i := range l.cmds {
			t.cmd(&l.cmds[i])
		}
	}
}

type tessellator struct {
	mesh  *Mesh
	atlas *Atlas
	white [2]float32
}

func (t *tessellator) begin(clip ClipRect) {
	n := len(t.mesh.Batches)
	if n > 0 && t.mesh.Batches[n-1].Clip == clip {
		return
	}
	t.mesh.Batches = append(t.mesh.Batches, Batch{Clip: clip, First: uint32(len(t.mesh.Vertices))})
}

func (t *tessellator) tri(a, b, c mgl32.Vec2, col Color) {
	t.mesh.Vertices = append(t.mesh.Vertices,
		Vertex{Pos: a, UV: t.white, Color: col},
		Vertex{Pos: b, UV: t.white, Color: col},
		Vertex{Pos: c, UV: t.white, Color: col},
	)
	t.mesh.Batches[len(t.mesh.Batches)-1].Count += 3
}

func (t *tessellator) fan(pts []mgl32.Vec2, col Color) {
	for i := 1; i+1 < len(pts); i++ {
		t.tri(pts[0], pts[i], pts[i+1], col)
	}
}

func (t *tessellator) segment(a, b mgl32.Vec2, col Color, thickness float32) {
	d := b.Sub(a)
	l := d.Len()
	if l < 1e-6 {
		return
	}
	if thickness <= 0 {
		thickness = 1
	}
	n := mgl32.Vec2{-d[1], d[0]}.Mul(thickness * 0.5 / l)
	p0, p1, p2, p3 := a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)
	t.tri(p0, p1, p2, col)
	t.tri(p0, p2, p3, col)
}

func (t *tessellator) polyline(pts []mgl32.Vec2, col Color, closed bool, thickness float32) {
	for i := 0; i+1 < len(pts); i++ {
		t.segment(pts[i], pts[i+1], col, thickness)
	}
	if closed && len(pts) > 2 {
		t.segment(pts[len(pts)-1], pts[0], col, thickness)
	}
}

func (t *tessellator) cmd(c *Cmd) {
	t.begin(c.Clip)
	switch c.Kind {
	case KindLine:
		t.segment(c.Points[0], c.Points[1], c.Color, c.Thickness)
	case KindPolyline:
		t.polyline(c.Points, c.Color, c.Closed, c.Thickness)
	case KindTriangleFilled, KindConvexPolyFilled:
		t.fan(c.Points, c.Color)
	case KindCircle:
		t.polyline(CirclePoints(c.Points[0], c.Radius, c.Segments), c.Color, true, c.Thickness)
	case KindCircleFilled:
		t.fan(CirclePoints(c.Points[0], c.Radius, c.Segments), c.Color)
	case KindRectFilled:
		lo, hi := c.Points[0], c.Points[1]
		t.fan([]mgl32.Vec2{lo, {hi[0], lo[1]}, hi, {lo[0], hi[1]}}, c.Color)
	case KindText:
		t.text(c.Points[0], c.Text, c.Color)
	}
}

func (t *tessellator) text(pos mgl32.Vec2, text string, col Color) {
	if t.atlas == nil {
		return
	}
	x, y := pos[0], pos[1]+t.atlas.ascent
	for _, r := range text {
		if r == '\n' {
			x = pos[0]
			y += t.atlas.lineHeight
			continue
		}
		g, ok := t.atlas.Glyphs[r]
		if !ok {
			continue
		}
		x0, y0 := x+g.Off[0], y+g.Off[1]
		x1, y1 := x0+g.Size[0], y0+g.Size[1]
		v := func(px, py, u, w float32) Vertex {
			return Vertex{Pos: [2]float32{px, py}, UV: [2]float32{u, w}, Color: col}
		}
		t.mesh.Vertices = append(t.mesh.Vertices,
			v(x0, y0, g.UVMin[0], g.UVMin[1]),
			v(x1, y0, g.UVMax[0], g.UVMin[1]),
			v(x0, y1, g.UVMin[0], g.UVMax[1]),
			v(x1, y0, g.UVMax[0], g.UVMin[1]),
			v(x1, y1, g.UVMax[0], g.UVMax[1]),
			v(x0, y1, g.UVMin[0], g.UVMax[1]),
		)
		t.mesh.Batches[len(t.mesh.Batches)-1].Count += 6
		x += g.Adv
	}
}
