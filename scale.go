package gizmo

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gekko3d/gizmo/draw"
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	minScaleRatio    = 1e-3
	uniformScaleRate = 0.01
)

func (c *manipContext) beginScale(d *dragState) bool {
	d.ratio = mgl32.Vec3{1, 1, 1}
	if d.handle == HandleScaleXYZ {
		return true
	}
	dir := c.axisDir[d.handle.axis()]
	if !c.beginPlaneDrag(&d.start, c.axisPlaneNormal(dir)) {
		return false
	}
	// a press on the origin has no lever arm to scale with
	return math32.Abs(d.start.hit.Sub(c.position).Dot(dir)) > math3d.Epsilon
}

// applyScale rescales the snapshot basis by the ratio of the current to
// the initial pointer distance along the axis.
func (c *manipContext) applyScale(d *dragState, snap *mgl32.Vec3) (mgl32.Mat4, bool) {
	s := &d.start
	ratio := mgl32.Vec3{1, 1, 1}
	if d.handle == HandleScaleXYZ {
		u := 1 + (c.mouse[0]-s.mouse[0])*uniformScaleRate
		if snap != nil {
			u = math3d.SnapValue(u, snap[0])
		}
		u = math32.Max(u, minScaleRatio)
		ratio = mgl32.Vec3{u, u, u}
	} else {
		i := d.handle.axis()
		hit, ok := c.intersectDragPlane(s)
		if !ok {
			return mgl32.Mat4{}, false
		}
		dir := s.axisDir[i]
		r := hit.Sub(s.position).Dot(dir) / s.hit.Sub(s.position).Dot(dir)
		if snap != nil {
			r = math3d.SnapValue(r, snap[i])
		}
		ratio[i] = math32.Max(r, minScaleRatio)
	}
	d.ratio = ratio

	var m mgl32.Mat4
	for i := 0; i < 3; i++ {
		m.SetCol(i, s.basis[i].Mul(s.scale[i]*ratio[i]).Vec4(0))
	}
	m.SetCol(3, s.position.Vec4(1))
	return m, true
}

func (c *manipContext) drawScale(l *draw.List, st handleState, d *dragState) {
	colors := &c.style.Colors
	active := st.active.Operation() == Scale

	for i := 0; i < 3; i++ {
		if !c.axisVisible[i] {
			continue
		}
		h := HandleScaleX + Handle(i)
		col := c.handleColor(colors.Axis[i], h, st)
		a, b, ok := c.axisSegment(i, 0.1, 1)
		if !ok {
			continue
		}
		if active {
			l.AddLine(a, b, colors.ScaleLine, c.style.ScaleLineThickness)
			l.AddCircleFilled(b, c.style.ScaleCircleSize, colors.ScaleLine, 0)
			// the live handle follows the ratio, which the model already carries
			if d.handle == h || d.handle == HandleScaleXYZ {
				end, okEnd := c.worldToScreen(d.start.position.Add(d.start.axisDir[i].Mul(d.start.screenFactor * d.ratio[i])))
				if okEnd {
					b = end
				}
			}
		}
		l.AddLine(a, b, col, c.style.ScaleLineThickness)
		l.AddCircleFilled(b, c.style.ScaleCircleSize, col, 0)
	}

	l.AddCircleFilled(c.center, c.style.CenterCircleSize, c.handleColor(colors.Screen, HandleScaleXYZ, st), 32)

	if active {
		c.drawLabel(l, scaleLabel(d.handle, d.ratio))
	}
}

func scaleLabel(h Handle, ratio mgl32.Vec3) string {
	if i := h.axis(); i >= 0 {
		return fmt.Sprintf("%s : %5.2f", axisLabels[i], ratio[i])
	}
	return fmt.Sprintf("XYZ : %5.2f", ratio[0])
}
