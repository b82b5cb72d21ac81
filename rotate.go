package gizmo

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gekko3d/gizmo/draw"
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
)

const ringSegments = 64

func (c *manipContext) beginRotate(d *dragState) bool {
	if d.handle == HandleRotateScreen {
		d.axis = c.forward.Mul(-1)
	} else {
		d.axis = c.axes[d.handle.axis()]
	}
	if !c.beginPlaneDrag(&d.start, d.axis) {
		return false
	}
	v := d.start.hit.Sub(c.position)
	if v.Len() < math3d.Epsilon {
		return false
	}
	d.lastVec = v.Normalize()
	d.angle = 0
	d.snapped = 0
	return true
}

// signedAngle is the angle turning a into b about n, right handed.
func signedAngle(a, b, n mgl32.Vec3) float32 {
	angle := math32.Acos(mgl32.Clamp(a.Dot(b), -1, 1))
	if a.Cross(b).Dot(n) < 0 {
		return -angle
	}
	return angle
}

// applyRotate accumulates the frame to frame angle so drags can wind past
// half a turn, then rotates the snapshot model about its origin.
func (c *manipContext) applyRotate(d *dragState, snap *mgl32.Vec3) (mgl32.Mat4, bool) {
	s := &d.start
	hit, ok := c.intersectDragPlane(s)
	if !ok {
		return mgl32.Mat4{}, false
	}
	v := hit.Sub(s.position)
	if v.Len() < math3d.Epsilon {
		return mgl32.Mat4{}, false
	}
	cur := v.Normalize()
	d.angle += signedAngle(d.lastVec, cur, d.axis)
	d.lastVec = cur

	total := d.angle
	if snap != nil {
		total = mgl32.DegToRad(math3d.SnapValue(mgl32.RadToDeg(total), snap[0]))
	}
	d.snapped = total

	linear := s.model
	linear.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	m := mgl32.Translate3D(s.position[0], s.position[1], s.position[2]).
		Mul4(mgl32.HomogRotate3D(total, d.axis)).
		Mul4(linear)
	return m, true
}

// ringPoint returns the world point at angle a on the ring of axis i.
func (c *manipContext) ringPoint(i int, a, radius float32) mgl32.Vec3 {
	u, v := c.axes[(i+1)%3], c.axes[(i+2)%3]
	sin, cos := math32.Sincos(a)
	return c.position.Add(u.Mul(cos * radius)).Add(v.Mul(sin * radius))
}

// frontFacing reports whether p is on the camera side of the gizmo center.
func (c *manipContext) frontFacing(p mgl32.Vec3) bool {
	return c.viewDepth(p) <= c.viewDepth(c.position)+c.screenFactor*1e-3
}

func (c *manipContext) drawRotate(l *draw.List, st handleState, d *dragState) {
	colors := &c.style.Colors
	radius := c.screenFactor * c.style.RotationRadius

	l.AddCircle(c.center, c.style.ScreenRingSize*c.rect.Height,
		c.handleColor(colors.Screen, HandleRotateScreen, st), ringSegments, c.style.RotationOuterThickness)

	for i := 0; i < 3; i++ {
		col := c.handleColor(colors.Axis[i], HandleRotateX+Handle(i), st)
		var run []mgl32.Vec2
		flush := func() {
			if len(run) > 1 {
				l.AddPolyline(run, col, false, c.style.RotationLineThickness)
			}
			run = run[:0]
		}
		for k := 0; k <= ringSegments; k++ {
			p := c.ringPoint(i, float32(k)/ringSegments*2*math32.Pi, radius)
			s, ok := c.worldToScreen(p)
			if !ok || !c.frontFacing(p) {
				flush()
				continue
			}
			run = append(run, s)
		}
		flush()
	}

	if st.active.Operation() != Rotate {
		return
	}
	r := radius
	if d.handle == HandleRotateScreen {
		r = c.screenRingWorldRadius()
	}
	start := d.start.hit.Sub(d.start.position)
	if start.Len() > math3d.Epsilon {
		start = start.Normalize().Mul(r)
		fan := []mgl32.Vec2{c.center}
		const steps = 32
		for k := 0; k <= steps; k++ {
			rot := mgl32.HomogRotate3D(d.snapped*float32(k)/steps, d.axis)
			p := d.start.position.Add(math3d.TransformVector(rot, start))
			if s, ok := c.worldToScreen(p); ok {
				fan = append(fan, s)
			}
		}
		if len(fan) > 2 {
			for k := 1; k+1 < len(fan); k++ {
				l.AddTriangleFilled(fan[0], fan[k], fan[k+1], colors.RotationFill)
			}
			l.AddPolyline(fan, colors.RotationBorder, true, 2)
		}
	}
	c.drawLabel(l, rotateLabel(d.handle, d.snapped))
}

// screenRingWorldRadius converts the screen ring radius to world units at
// the gizmo depth.
func (c *manipContext) screenRingWorldRadius() float32 {
	px := c.style.ScreenRingSize * c.rect.Height
	edge, ok := c.worldToScreen(c.position.Add(c.right.Mul(c.screenFactor)))
	if !ok {
		return c.screenFactor
	}
	sfPx := edge.Sub(c.center).Len()
	if sfPx < math3d.Epsilon {
		return c.screenFactor
	}
	return c.screenFactor * px / sfPx
}

func rotateLabel(h Handle, angle float32) string {
	name := "Screen"
	if i := h.axis(); i >= 0 {
		name = axisLabels[i]
	}
	return fmt.Sprintf("%s : %5.2f deg %5.2f rad", name, mgl32.RadToDeg(angle), angle)
}
