package gizmo

import (
	"fmt"

	"github.com/gekko3d/gizmo/draw"
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
)

var axisLabels = [3]string{"X", "Y", "Z"}

func (c *manipContext) beginTranslate(d *dragState) bool {
	h := d.handle
	switch {
	case h == HandleTranslateScreen:
		return c.beginPlaneDrag(&d.start, c.forward.Mul(-1))
	case h.isPlane():
		return c.beginPlaneDrag(&d.start, c.axisDir[h.axis()])
	default:
		return c.beginPlaneDrag(&d.start, c.axisPlaneNormal(c.axisDir[h.axis()]))
	}
}

// applyTranslate moves the snapshot model by the pointer offset on the
// drag plane, constrained to the captured handle.
func (c *manipContext) applyTranslate(d *dragState, snap *mgl32.Vec3) (mgl32.Mat4, bool) {
	s := &d.start
	hit, ok := c.intersectDragPlane(s)
	if !ok {
		return mgl32.Mat4{}, false
	}
	delta := hit.Sub(s.hit)
	if d.handle.axis() >= 0 && !d.handle.isPlane() {
		axis := s.axisDir[d.handle.axis()]
		delta = axis.Mul(delta.Dot(axis))
	}
	if snap != nil {
		delta = snapTranslation(delta, s, *snap)
	}
	d.offset = delta

	m := s.model
	m.SetCol(3, s.position.Add(delta).Vec4(1))
	return m, true
}

// snapTranslation rounds delta per axis of the frame the drag runs in.
func snapTranslation(delta mgl32.Vec3, s *dragSnapshot, step mgl32.Vec3) mgl32.Vec3 {
	if s.mode == World {
		return math3d.SnapVec3(delta, step)
	}
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		out = out.Add(s.basis[i].Mul(math3d.SnapValue(delta.Dot(s.basis[i]), step[i])))
	}
	return out
}

func (c *manipContext) drawTranslate(l *draw.List, st handleState, d *dragState) {
	colors := &c.style.Colors
	sf := c.screenFactor

	if st.active.Operation() == Translate {
		from, okFrom := c.worldToScreen(d.start.position)
		if okFrom {
			l.AddLine(from, c.center, colors.TranslateLine, 2)
			l.AddCircle(from, c.style.CenterCircleSize, colors.TranslateLine, 0, 1)
		}
	}

	for i := 0; i < 3; i++ {
		if !c.planeVisible[i] {
			continue
		}
		u, v := c.axisDir[(i+1)%3].Mul(sf), c.axisDir[(i+2)%3].Mul(sf)
		quad := make([]mgl32.Vec2, 0, 4)
		for _, uv := range [4][2]float32{{planeQuadMin, planeQuadMin}, {planeQuadMax, planeQuadMin}, {planeQuadMax, planeQuadMax}, {planeQuadMin, planeQuadMax}} {
			p, ok := c.worldToScreen(c.position.Add(u.Mul(uv[0])).Add(v.Mul(uv[1])))
			if !ok {
				quad = nil
				break
			}
			quad = append(quad, p)
		}
		if quad == nil {
			continue
		}
		h := HandleTranslateYZ + Handle(i)
		l.AddPolyline(quad, c.handleColor(colors.Axis[i], h, st), true, 1)
		l.AddConvexPolyFilled(quad, c.handleColor(colors.Plane[i], h, st))
	}

	for i := 0; i < 3; i++ {
		if !c.axisVisible[i] {
			continue
		}
		a, b, ok := c.axisSegment(i, 0.1, 1)
		if !ok {
			continue
		}
		col := c.handleColor(colors.Axis[i], HandleTranslateX+Handle(i), st)
		l.AddLine(a, b, col, c.style.TranslationLineThickness)
		dir := b.Sub(a)
		if dir.Len() < math3d.Epsilon {
			continue
		}
		dir = dir.Normalize().Mul(c.style.TranslationArrowSize)
		ortho := mgl32.Vec2{dir[1], -dir[0]}
		tip := b.Add(dir)
		l.AddTriangleFilled(tip, b.Add(ortho), b.Sub(ortho), col)
	}

	l.AddCircleFilled(c.center, c.style.CenterCircleSize, c.handleColor(colors.Screen, HandleTranslateScreen, st), 32)

	if st.active.Operation() == Translate {
		local := d.offset
		if d.start.mode == Local {
			local = mgl32.Vec3{d.offset.Dot(d.start.basis[0]), d.offset.Dot(d.start.basis[1]), d.offset.Dot(d.start.basis[2])}
		}
		c.drawLabel(l, translateLabel(d.handle, local))
	}
}

func translateLabel(h Handle, offset mgl32.Vec3) string {
	switch {
	case h == HandleTranslateScreen:
		return fmt.Sprintf("X : %5.3f Y : %5.3f Z : %5.3f", offset[0], offset[1], offset[2])
	case h.isPlane():
		i := h.axis()
		u, v := (i+1)%3, (i+2)%3
		return fmt.Sprintf("%s : %5.3f %s : %5.3f", axisLabels[u], offset[u], axisLabels[v], offset[v])
	default:
		i := h.axis()
		return fmt.Sprintf("%s : %5.3f", axisLabels[i], offset[i])
	}
}

// drawLabel writes text with a drop shadow next to the gizmo center.
func (c *manipContext) drawLabel(l *draw.List, text string) {
	pos := c.center.Add(mgl32.Vec2{15, 15})
	l.AddText(pos.Add(mgl32.Vec2{1, 1}), c.style.Colors.TextShadow, text)
	l.AddText(pos, c.style.Colors.Text, text)
}
