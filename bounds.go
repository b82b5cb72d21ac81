package gizmo

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"
	"github.com/gekko3d/gizmo/draw"
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
)

// boundsPick locates an anchor on one face rectangle of the bounds box.
// normal is the axis the rectangle is perpendicular to; iu and iv index
// min (0), middle (1) and max (2) along the two other axes.
type boundsPick struct {
	normal int
	iu, iv int
}

func (p boundsPick) axes() (u, v int) {
	return (p.normal + 1) % 3, (p.normal + 2) % 3
}

func (p boundsPick) corner() bool { return p.iu != 1 && p.iv != 1 }

// pivot is the anchor opposite p, which stays put while p is dragged.
func (p boundsPick) pivot() boundsPick {
	return boundsPick{normal: p.normal, iu: 2 - p.iu, iv: 2 - p.iv}
}

// local returns the anchor position in model space.
func (p boundsPick) local(b *[6]float32) mgl32.Vec3 {
	u, v := p.axes()
	var out mgl32.Vec3
	out[p.normal] = (b[p.normal] + b[p.normal+3]) * 0.5
	out[u] = lerpIndex(b[u], b[u+3], p.iu)
	out[v] = lerpIndex(b[v], b[v+3], p.iv)
	return out
}

func lerpIndex(lo, hi float32, i int) float32 {
	switch i {
	case 0:
		return lo
	case 2:
		return hi
	}
	return (lo + hi) * 0.5
}

// boundsDrag is the part of the drag snapshot specific to bounds.
type boundsDrag struct {
	pick     boundsPick
	start    [6]float32
	anchor   mgl32.Vec3
	pivot    mgl32.Vec3
	hitLocal mgl32.Vec3
}

var boundsAnchors = [8][2]int{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {1, 0}, {2, 1}, {1, 2}, {0, 1}}

// boundsFaces returns the two box axes whose faces look most directly at
// the camera.
func (c *manipContext) boundsFaces() [2]int {
	toModel := c.cameraToModel()
	order := []int{0, 1, 2}
	score := func(k int) float32 {
		return math32.Abs(math3d.SafeNormalize(c.model.Col(k).Vec3(), mgl32.Vec3{}).Dot(toModel))
	}
	sort.SliceStable(order, func(a, b int) bool { return score(order[a]) > score(order[b]) })
	return [2]int{order[0], order[1]}
}

func (c *manipContext) boundsCandidates(out []candidate, b *[6]float32) []candidate {
	for _, k := range c.boundsFaces() {
		for _, a := range boundsAnchors {
			pick := boundsPick{normal: k, iu: a[0], iv: a[1]}
			world := math3d.TransformPoint(c.model, pick.local(b))
			s, ok := c.worldToScreen(world)
			if !ok {
				continue
			}
			radius, h := c.style.BoundsMidRadius, HandleBoundsEdge
			if pick.corner() {
				radius, h = c.style.BoundsAnchorRadius, HandleBoundsCorner
			}
			if dist := s.Sub(c.mouse).Len(); dist < radius {
				p := pick
				out = append(out, candidate{handle: h, dist: dist, depth: c.viewDepth(world), bounds: &p})
			}
		}
	}
	return out
}

func (c *manipContext) beginBounds(d *dragState, pick *boundsPick, b *[6]float32) bool {
	if pick == nil || b == nil {
		return false
	}
	bd := &d.bounds
	bd.pick = *pick
	bd.start = *b
	bd.anchor = pick.local(b)
	bd.pivot = pick.pivot().local(b)
	normal := c.model.Col(pick.normal).Vec3()
	if !c.beginPlaneDragAt(&d.start, math3d.TransformPoint(c.model, bd.anchor), normal) {
		return false
	}
	bd.hitLocal = math3d.TransformPoint(c.modelInv, d.start.hit)
	return true
}

// applyBounds rescales the snapshot bounds about the pivot anchor along
// the axes the picked anchor moves. The model matrix is left alone.
func (c *manipContext) applyBounds(d *dragState, b *[6]float32, snap *mgl32.Vec3) bool {
	hit, ok := c.intersectDragPlane(&d.start)
	if !ok {
		return false
	}
	bd := &d.bounds
	hitLocal := math3d.TransformPoint(d.start.modelInv, hit)
	next := bd.start
	u, v := bd.pick.axes()
	for _, ax := range [2]struct{ axis, index int }{{u, bd.pick.iu}, {v, bd.pick.iv}} {
		if ax.index == 1 {
			continue
		}
		i := ax.axis
		extent := bd.anchor[i] - bd.pivot[i]
		if math32.Abs(extent) < math3d.Epsilon {
			continue
		}
		ratio := (extent + hitLocal[i] - bd.hitLocal[i]) / extent
		ratio = math32.Max(ratio, minScaleRatio)
		size := math32.Abs(extent) * ratio
		if snap != nil {
			size = math32.Max(math3d.SnapValue(size, snap[i]), math32.Abs(extent)*minScaleRatio)
		}
		end := bd.pivot[i] + size
		if extent < 0 {
			end = bd.pivot[i] - size
		}
		next[i] = math32.Min(bd.pivot[i], end)
		next[i+3] = math32.Max(bd.pivot[i], end)
	}
	if next == *b {
		return false
	}
	*b = next
	return true
}

func (c *manipContext) drawBounds(l *draw.List, st handleState, d *dragState, b *[6]float32, hover *boundsPick) {
	colors := &c.style.Colors
	for _, k := range c.boundsFaces() {
		var outline []mgl32.Vec2
		for _, a := range boundsAnchors[:4] {
			s, ok := c.worldToScreen(math3d.TransformPoint(c.model, boundsPick{normal: k, iu: a[0], iv: a[1]}.local(b)))
			if !ok {
				outline = nil
				break
			}
			outline = append(outline, s)
		}
		if outline == nil {
			continue
		}
		l.AddPolyline(outline, colors.Bounds, true, 2)

		for _, a := range boundsAnchors {
			pick := boundsPick{normal: k, iu: a[0], iv: a[1]}
			s, ok := c.worldToScreen(math3d.TransformPoint(c.model, pick.local(b)))
			if !ok {
				continue
			}
			radius, h := c.style.BoundsMidRadius, HandleBoundsEdge
			if pick.corner() {
				radius, h = c.style.BoundsAnchorRadius, HandleBoundsCorner
			}
			col := colors.Bounds
			switch {
			case !st.enabled:
				col = colors.Inactive
			case st.active == h && d.bounds.pick == pick:
				col = colors.Selection
			case st.active == HandleNone && hover != nil && *hover == pick:
				col = colors.Selection
			}
			l.AddCircleFilled(s, radius*0.5, col, 0)
			l.AddCircle(s, radius*0.5, colors.Bounds, 0, 1)
		}
	}

	if st.active == HandleBoundsCorner || st.active == HandleBoundsEdge {
		size := mgl32.Vec3{b[3] - b[0], b[4] - b[1], b[5] - b[2]}
		size = mgl32.Vec3{size[0] * d.start.scale[0], size[1] * d.start.scale[1], size[2] * d.start.scale[2]}
		c.drawLabel(l, fmt.Sprintf("X: %.2f Y: %.2f Z: %.2f", size[0], size[1], size[2]))
	}
}
