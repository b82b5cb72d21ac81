// Package raster renders draw lists on the CPU. It backs headless
// screenshots and pixel level tests; the gpu package is the interactive
// backend.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/gekko3d/gizmo/draw"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

type Canvas struct {
	Image *image.RGBA
	z     vector.Rasterizer
}

func New(width, height int, background draw.Color) *Canvas {
	c := &Canvas{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
	c.Clear(background)
	return c
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col draw.Color) {
	px := toRGBA(col)
	for i := 0; i < len(c.Image.Pix); i += 4 {
		c.Image.Pix[i+0] = px.R
		c.Image.Pix[i+1] = px.G
		c.Image.Pix[i+2] = px.B
		c.Image.Pix[i+3] = px.A
	}
}

// At returns the pixel at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.Image.RGBAAt(x, y)
}

// Render draws every command of the lists in order.
func (c *Canvas) Render(lists ...*draw.List) {
	for _, l := range lists {
		if l == nil {
			continue
		}
		for _, cmd := range l.Commands() {
			c.cmd(cmd)
		}
	}
}

func (c *Canvas) cmd(cmd draw.Cmd) {
	switch cmd.Kind {
	case draw.KindLine:
		c.fill(cmd, [][]mgl32.Vec2{segmentQuad(cmd.Points[0], cmd.Points[1], cmd.Thickness)})
	case draw.KindPolyline:
		c.fill(cmd, polylineQuads(cmd.Points, cmd.Closed, cmd.Thickness))
	case draw.KindTriangleFilled, draw.KindConvexPolyFilled:
		c.fill(cmd, [][]mgl32.Vec2{cmd.Points})
	case draw.KindCircle:
		pts := draw.CirclePoints(cmd.Points[0], cmd.Radius, cmd.Segments)
		c.fill(cmd, polylineQuads(pts, true, cmd.Thickness))
	case draw.KindCircleFilled:
		c.fill(cmd, [][]mgl32.Vec2{draw.CirclePoints(cmd.Points[0], cmd.Radius, cmd.Segments)})
	case draw.KindRectFilled:
		lo, hi := cmd.Points[0], cmd.Points[1]
		c.fill(cmd, [][]mgl32.Vec2{{lo, {hi[0], lo[1]}, hi, {lo[0], hi[1]}}})
	case draw.KindText:
		c.text(cmd)
	}
}

func (c *Canvas) clipRect(clip draw.ClipRect) image.Rectangle {
	r := image.Rect(
		int(math32.Floor(mgl32.Clamp(clip.Min[0], -1<<20, 1<<20))),
		int(math32.Floor(mgl32.Clamp(clip.Min[1], -1<<20, 1<<20))),
		int(math32.Ceil(mgl32.Clamp(clip.Max[0], -1<<20, 1<<20))),
		int(math32.Ceil(mgl32.Clamp(clip.Max[1], -1<<20, 1<<20))),
	)
	return r.Intersect(c.Image.Bounds())
}

// fill rasterizes the union of polygons with the command color, limited to
// the command's clip rectangle.
func (c *Canvas) fill(cmd draw.Cmd, polys [][]mgl32.Vec2) {
	bounds := c.clipRect(cmd.Clip).Intersect(polygonBounds(polys))
	if bounds.Empty() {
		return
	}
	src := image.NewUniform(toNRGBA(cmd.Color))
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
		c.z.Reset(bounds.Dx(), bounds.Dy())
		c.z.MoveTo(poly[0][0]-ox, poly[0][1]-oy)
		for _, p := range poly[1:] {
			c.z.LineTo(p[0]-ox, p[1]-oy)
		}
		c.z.ClosePath()
		c.z.Draw(c.Image, bounds, src, image.Point{})
	}
}

func (c *Canvas) text(cmd draw.Cmd) {
	clip := c.clipRect(cmd.Clip)
	if clip.Empty() {
		return
	}
	dst, ok := c.Image.SubImage(clip).(*image.RGBA)
	if !ok {
		return
	}
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(toNRGBA(cmd.Color)),
		Face: face,
	}
	x, y := cmd.Points[0][0], cmd.Points[0][1]+float32(face.Ascent)
	line := ""
	flush := func() {
		d.Dot = fixed.P(int(x), int(y))
		d.DrawString(line)
		line = ""
		y += float32(face.Height)
	}
	for _, r := range cmd.Text {
		if r == '\n' {
			flush()
			continue
		}
		line += string(r)
	}
	flush()
}

// WritePNG encodes the canvas.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the canvas to path.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func segmentQuad(a, b mgl32.Vec2, thickness float32) []mgl32.Vec2 {
	d := b.Sub(a)
	l := d.Len()
	if l < 1e-6 {
		return nil
	}
	if thickness < 1 {
		thickness = 1
	}
	n := mgl32.Vec2{-d[1], d[0]}.Mul(thickness * 0.5 / l)
	return []mgl32.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

func polylineQuads(pts []mgl32.Vec2, closed bool, thickness float32) [][]mgl32.Vec2 {
	var quads [][]mgl32.Vec2
	for i := 0; i+1 < len(pts); i++ {
		quads = append(quads, segmentQuad(pts[i], pts[i+1], thickness))
	}
	if closed && len(pts) > 2 {
		quads = append(quads, segmentQuad(pts[len(pts)-1], pts[0], thickness))
	}
	return quads
}

func polygonBounds(polys [][]mgl32.Vec2) image.Rectangle {
	lo := mgl32.Vec2{math32.MaxFloat32, math32.MaxFloat32}
	hi := mgl32.Vec2{-math32.MaxFloat32, -math32.MaxFloat32}
	for _, poly := range polys {
		for _, p := range poly {
			lo = mgl32.Vec2{math32.Min(lo[0], p[0]), math32.Min(lo[1], p[1])}
			hi = mgl32.Vec2{math32.Max(hi[0], p[0]), math32.Max(hi[1], p[1])}
		}
	}
	if lo[0] > hi[0] {
		return image.Rectangle{}
	}
	lo = mgl32.Vec2{mgl32.Clamp(lo[0], -1<<20, 1<<20), mgl32.Clamp(lo[1], -1<<20, 1<<20)}
	hi = mgl32.Vec2{mgl32.Clamp(hi[0], -1<<20, 1<<20), mgl32.Clamp(hi[1], -1<<20, 1<<20)}
	return image.Rect(int(math32.Floor(lo[0])), int(math32.Floor(lo[1])), int(math32.Ceil(hi[0]))+1, int(math32.Ceil(hi[1]))+1)
}

func toNRGBA(c draw.Color) color.NRGBA {
	q := func(f float32) uint8 { return uint8(mgl32.Clamp(f, 0, 1)*255 + 0.5) }
	return color.NRGBA{R: q(c[0]), G: q(c[1]), B: q(c[2]), A: q(c[3])}
}

func toRGBA(c draw.Color) color.RGBA {
	return color.RGBAModel.Convert(toNRGBA(c)).(color.RGBA)
}
