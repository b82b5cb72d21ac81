package gizmo

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/gizmo/draw"
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
)

// manipContext is everything Manipulate derives from its inputs for one
// call: camera frame, gizmo frame, pointer ray and screen mapping.
type manipContext struct {
	style *Style
	rect  Rect
	ortho bool
	mouse mgl32.Vec2
	over  bool // pointer inside rect and not claimed by another widget

	view, proj, viewProj mgl32.Mat4
	model                mgl32.Mat4
	modelInv             mgl32.Mat4

	position mgl32.Vec3
	basis    [3]mgl32.Vec3
	scale    mgl32.Vec3
	// axes are the unit axes handles are built on: the model basis in Local
	// mode, the world axes otherwise.
	axes [3]mgl32.Vec3

	eye, forward, right, up mgl32.Vec3
	ray                     math3d.Ray

	screenFactor float32
	center       mgl32.Vec2

	// drawable means the projected geometry is finite; interactive
	// additionally requires invertible matrices for picking.
	drawable    bool
	interactive bool

	axisDir      [3]mgl32.Vec3
	axisVisible  [3]bool
	planeVisible [3]bool
}

func newManipContext(style *Style, rect Rect, ortho bool, in *Input, view, proj, model mgl32.Mat4, mode Mode) *manipContext {
	c := &manipContext{
		style:    style,
		rect:     rect,
		ortho:    ortho,
		mouse:    in.Mouse,
		view:     view,
		proj:     proj,
		viewProj: proj.Mul4(view),
		model:    model,
	}
	c.over = !in.WantCaptureMouse && rect.Contains(in.Mouse)

	c.drawable = !rect.Empty() && math3d.IsFinite(view) && math3d.IsFinite(proj) && math3d.IsFinite(model)
	if !c.drawable {
		return c
	}

	viewInv, okView := math3d.Inverse(view)
	vpInv, okVP := math3d.Inverse(c.viewProj)
	modelInv, okModel := math3d.Inverse(model)
	c.interactive = okView && okVP && okModel
	c.modelInv = modelInv
	if !okView {
		viewInv = mgl32.Ident4()
	}

	c.eye = viewInv.Col(3).Vec3()
	c.right = math3d.SafeNormalize(viewInv.Col(0).Vec3(), mgl32.Vec3{1, 0, 0})
	c.up = math3d.SafeNormalize(viewInv.Col(1).Vec3(), mgl32.Vec3{0, 1, 0})
	c.forward = math3d.SafeNormalize(viewInv.Col(2).Vec3().Mul(-1), mgl32.Vec3{0, 0, -1})

	c.basis, c.scale = math3d.Orthonormalize(model)
	c.position = model.Col(3).Vec3()
	if mode == Local {
		c.axes = c.basis
	} else {
		c.axes = [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}

	rightLen := c.clipLength(c.position, c.position.Add(c.right))
	if rightLen < math3d.Epsilon || !math3d.IsFiniteFloat(rightLen) {
		c.drawable = false
		c.interactive = false
		return c
	}
	c.screenFactor = style.GizmoSizeClipSpace / rightLen
	c.center, _ = c.worldToScreen(c.position)

	if c.interactive {
		c.ray = c.cameraRay(vpInv, c.mouse)
	}
	return c
}

// worldToScreen maps a world point to pixels. ok is false for points at or
// behind the camera plane.
func (c *manipContext) worldToScreen(p mgl32.Vec3) (mgl32.Vec2, bool) {
	return projectToRect(c.viewProj, p, c.rect)
}

func projectToRect(m mgl32.Mat4, p mgl32.Vec3, r Rect) (mgl32.Vec2, bool) {
	clip := m.Mul4x1(p.Vec4(1))
	w := clip[3]
	ndc := clip.Vec3().Mul(1 / w)
	x := (ndc[0]*0.5+0.5)*r.Width + r.X
	y := (0.5-ndc[1]*0.5)*r.Height + r.Y
	return mgl32.Vec2{x, y}, w > math3d.Epsilon
}

// cameraRay unprojects a screen position into a world ray.
func (c *manipContext) cameraRay(vpInv mgl32.Mat4, mouse mgl32.Vec2) math3d.Ray {
	return rayFromScreen(vpInv, mouse, c.rect)
}

func rayFromScreen(vpInv mgl32.Mat4, mouse mgl32.Vec2, r Rect) math3d.Ray {
	mx := (mouse[0]-r.X)/r.Width*2 - 1
	my := 1 - (mouse[1]-r.Y)/r.Height*2
	near := vpInv.Mul4x1(mgl32.Vec4{mx, my, -1, 1})
	far := vpInv.Mul4x1(mgl32.Vec4{mx, my, 0, 1})
	a := near.Vec3().Mul(1 / near[3])
	b := far.Vec3().Mul(1 / far[3])
	return math3d.Ray{Origin: a, Dir: math3d.SafeNormalize(b.Sub(a), mgl32.Vec3{0, 0, -1})}
}

func (c *manipContext) ndc(p mgl32.Vec3) mgl32.Vec2 {
	v := c.viewProj.Mul4x1(p.Vec4(1))
	if math32.Abs(v[3]) > math3d.Epsilon {
		v = v.Mul(1 / v[3])
	}
	return mgl32.Vec2{v[0], v[1]}
}

// aspectCorrect scales a normalized device vector so both axes measure the
// same physical length.
func (c *manipContext) aspectCorrect(v mgl32.Vec2) mgl32.Vec2 {
	ratio := c.rect.Aspect()
	if ratio < 1 {
		v[0] *= ratio
	} else {
		v[1] /= ratio
	}
	return v
}

// clipLength is the aspect-corrected projected length of segment [a, b].
func (c *manipContext) clipLength(a, b mgl32.Vec3) float32 {
	return c.aspectCorrect(c.ndc(b).Sub(c.ndc(a))).Len()
}

// parallelogram is the aspect-corrected projected area spanned by the
// vectors a and b at origin.
func (c *manipContext) parallelogram(origin, a, b mgl32.Vec3) float32 {
	o := c.ndc(origin)
	sa := c.aspectCorrect(c.ndc(origin.Add(a)).Sub(o))
	sb := c.aspectCorrect(c.ndc(origin.Add(b)).Sub(o))
	return math32.Abs(math3d.Cross2(sa, sb))
}

// viewDepth is the distance of p in front of the camera plane.
func (c *manipContext) viewDepth(p mgl32.Vec3) float32 {
	return p.Sub(c.eye).Dot(c.forward)
}

// cameraToModel is the unit direction from the camera toward the gizmo.
func (c *manipContext) cameraToModel() mgl32.Vec3 {
	if c.ortho {
		return c.forward
	}
	return math3d.SafeNormalize(c.position.Sub(c.eye), c.forward)
}

// behindCamera reports whether the gizmo origin is not in front of a
// perspective camera.
func (c *manipContext) behindCamera() bool {
	if c.ortho {
		return false
	}
	return c.viewProj.Mul4x1(c.position.Vec4(1))[3] <= 0.001
}

// computeAxes flips every axis toward the viewer (when allowed) and decides
// which axes and planes are too foreshortened to show.
func (c *manipContext) computeAxes(allowFlip bool) {
	for i := 0; i < 3; i++ {
		dir := c.axes[i]
		if allowFlip {
			plus := c.clipLength(c.position, c.position.Add(dir))
			minus := c.clipLength(c.position, c.position.Sub(dir))
			if plus < minus && math32.Abs(plus-minus) > math3d.Epsilon {
				dir = dir.Mul(-1)
			}
		}
		c.axisDir[i] = dir
	}

	size := c.style.GizmoSizeClipSpace
	for i := 0; i < 3; i++ {
		axisLen := c.clipLength(c.position, c.position.Add(c.axisDir[i].Mul(c.screenFactor)))
		c.axisVisible[i] = axisLen > c.style.AxisLimit*size

		u, v := c.axisDir[(i+1)%3].Mul(c.screenFactor), c.axisDir[(i+2)%3].Mul(c.screenFactor)
		c.planeVisible[i] = c.parallelogram(c.position, u, v) > c.style.PlaneLimit*size*size
	}
}

// axisPlaneNormal returns the normal of the plane that contains axis and
// faces the camera as much as possible.
func (c *manipContext) axisPlaneNormal(axis mgl32.Vec3) mgl32.Vec3 {
	toModel := c.cameraToModel()
	n := axis.Cross(axis.Cross(toModel))
	return math3d.SafeNormalize(n, c.forward)
}

// handleColor picks the idle, highlighted or disabled color of h.
func (c *manipContext) handleColor(base draw.Color, h Handle, st handleState) draw.Color {
	switch {
	case !st.enabled:
		return c.style.Colors.Inactive
	case st.active != HandleNone:
		if h == st.active {
			return c.style.Colors.Selection
		}
	case h == st.hovered:
		return c.style.Colors.Selection
	}
	return base
}

// handleState is the visual state shared by all handles of one call.
type handleState struct {
	enabled bool
	hovered Handle
	active  Handle
}
