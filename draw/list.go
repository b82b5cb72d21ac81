// Package draw is the sink the gizmo emits its screen-space primitives
// into. A List is an ordered sequence of 2D commands, consumed once per
// frame by a backend (see the gpu and raster packages).
package draw

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Color is straight RGBA in [0, 1].
type Color [4]float32

// RGBA8 builds a Color from 8-bit channels.
func RGBA8(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// ColorU32 decodes a packed 0xAABBGGRR color, the layout immediate-mode UI
// libraries use.
func ColorU32(c uint32) Color {
	return RGBA8(uint8(c), uint8(c>>8), uint8(c>>16), uint8(c>>24))
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Scale multiplies the RGB channels by f, leaving alpha alone.
func (c Color) Scale(f float32) Color {
	for i := 0; i < 3; i++ {
		c[i] = mgl32.Clamp(c[i]*f, 0, 1)
	}
	return c
}

// Kind identifies a primitive.
type Kind uint8

const (
	KindLine Kind = iota
	KindPolyline
	KindTriangleFilled
	KindConvexPolyFilled
	KindCircle
	KindCircleFilled
	KindRectFilled
	KindText
)

var kindNames = [...]string{"line", "polyline", "triangle", "convex", "circle", "circle_filled", "rect_filled", "text"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ClipRect is an axis aligned screen rectangle.
type ClipRect struct {
	Min, Max mgl32.Vec2
}

// NoClip covers every representable coordinate.
var NoClip = ClipRect{Min: mgl32.Vec2{-math32.MaxFloat32, -math32.MaxFloat32}, Max: mgl32.Vec2{math32.MaxFloat32, math32.MaxFloat32}}

// Contains reports whether p is inside the rectangle.
func (r ClipRect) Contains(p mgl32.Vec2) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] && p[1] >= r.Min[1] && p[1] <= r.Max[1]
}

// Intersect returns the overlap of both rectangles.
func (r ClipRect) Intersect(o ClipRect) ClipRect {
	out := ClipRect{
		Min: mgl32.Vec2{math32.Max(r.Min[0], o.Min[0]), math32.Max(r.Min[1], o.Min[1])},
		Max: mgl32.Vec2{math32.Min(r.Max[0], o.Max[0]), math32.Min(r.Max[1], o.Max[1])},
	}
	if out.Max[0] < out.Min[0] {
		out.Max[0] = out.Min[0]
	}
	if out.Max[1] < out.Min[1] {
		out.Max[1] = out.Min[1]
	}
	return out
}

// Cmd is one primitive. Points holds the shape's vertices: two for a line,
// three for a triangle, one (the center) for circles, min and max for
// rectangles and one (the top-left corner) for text.
type Cmd struct {
	Kind      Kind
	Points    []mgl32.Vec2
	Color     Color
	Thickness float32
	Radius    float32
	Segments  int
	Closed    bool
	Text      string
	Clip      ClipRect
}

// List accumulates commands for one frame.
type List struct {
	cmds    []Cmd
	clip    []ClipRect
	dropped int
}

func NewList() *List {
	return &List{}
}

// Reset clears all commands and the clip stack, keeping capacity.
func (l *List) Reset() {
	l.cmds = l.cmds[:0]
	l.clip = l.clip[:0]
	l.dropped = 0
}

func (l *List) Len() int { return len(l.cmds) }

// Commands returns the recorded commands in submission order.
func (l *List) Commands() []Cmd { return l.cmds }

// Dropped counts primitives rejected for non-finite coordinates since the
// last Reset.
func (l *List) Dropped() int { return l.dropped }

// PushClipRect restricts following commands to the intersection of r and
// the current clip.
func (l *List) PushClipRect(min, max mgl32.Vec2) {
	r := ClipRect{Min: min, Max: max}
	l.clip = append(l.clip, l.CurrentClip().Intersect(r))
}

func (l *List) PopClipRect() {
	if len(l.clip) > 0 {
		l.clip = l.clip[:len(l.clip)-1]
	}
}

// CurrentClip returns the active clip rectangle.
func (l *List) CurrentClip() ClipRect {
	if len(l.clip) == 0 {
		return NoClip
	}
	return l.clip[len(l.clip)-1]
}

func (l *List) add(c Cmd, extra ...float32) {
	for _, p := range c.Points {
		if !finite(p[0]) || !finite(p[1]) {
			l.dropped++
			return
		}
	}
	for _, f := range extra {
		if !finite(f) {
			l.dropped++
			return
		}
	}
	c.Clip = l.CurrentClip()
	l.cmds = append(l.cmds, c)
}

func (l *List) AddLine(a, b mgl32.Vec2, col Color, thickness float32) {
	l.add(Cmd{Kind: KindLine, Points: []mgl32.Vec2{a, b}, Color: col, Thickness: thickness}, thickness)
}

func (l *List) AddPolyline(points []mgl32.Vec2, col Color, closed bool, thickness float32) {
	if len(points) < 2 {
		return
	}
	pts := append([]mgl32.Vec2(nil), points...)
	l.add(Cmd{Kind: KindPolyline, Points: pts, Color: col, Closed: closed, Thickness: thickness}, thickness)
}

func (l *List) AddTriangleFilled(a, b, c mgl32.Vec2, col Color) {
	l.add(Cmd{Kind: KindTriangleFilled, Points: []mgl32.Vec2{a, b, c}, Color: col})
}

// AddConvexPolyFilled fills a convex polygon given in either winding.
func (l *List) AddConvexPolyFilled(points []mgl32.Vec2, col Color) {
	if len(points) < 3 {
		return
	}
	pts := append([]mgl32.Vec2(nil), points...)
	l.add(Cmd{Kind: KindConvexPolyFilled, Points: pts, Color: col})
}

func (l *List) AddCircle(center mgl32.Vec2, radius float32, col Color, segments int, thickness float32) {
	l.add(Cmd{Kind: KindCircle, Points: []mgl32.Vec2{center}, Radius: radius, Color: col, Segments: segments, Thickness: thickness}, radius, thickness)
}

func (l *List) AddCircleFilled(center mgl32.Vec2, radius float32, col Color, segments int) {
	l.add(Cmd{Kind: KindCircleFilled, Points: []mgl32.Vec2{center}, Radius: radius, Color: col, Segments: segments}, radius)
}

func (l *List) AddRectFilled(min, max mgl32.Vec2, col Color) {
	l.add(Cmd{Kind: KindRectFilled, Points: []mgl32.Vec2{min, max}, Color: col})
}

// AddRect outlines a rectangle.
func (l *List) AddRect(min, max mgl32.Vec2, col Color, thickness float32) {
	pts := []mgl32.Vec2{min, {max[0], min[1]}, max, {min[0], max[1]}}
	l.AddPolyline(pts, col, true, thickness)
}

// AddText draws a single or multi line label with its top-left at pos.
func (l *List) AddText(pos mgl32.Vec2, col Color, text string) {
	if text == "" {
		return
	}
	l.add(Cmd{Kind: KindText, Points: []mgl32.Vec2{pos}, Color: col, Text: text})
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// CirclePoints returns the polygon approximating a circle.
func CirclePoints(center mgl32.Vec2, radius float32, segments int) []mgl32.Vec2 {
	if segments < 3 {
		segments = AutoSegments(radius)
	}
	pts := make([]mgl32.Vec2, segments)
	for i := range pts {
		a := float32(i) / float32(segments) * 2 * math32.Pi
		s, c := math32.Sincos(a)
		pts[i] = mgl32.Vec2{center[0] + c*radius, center[1] + s*radius}
	}
	return pts
}

// AutoSegments picks a segment count that keeps the circle smooth at the
// given radius.
func AutoSegments(radius float32) int {
	n := int(math32.Ceil(radius * 0.75))
	if n < 12 {
		n = 12
	}
	if n > 64 {
		n = 64
	}
	return n
}
