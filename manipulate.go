package gizmo

import (
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
)

// ManipulateOptions are the optional in/out parameters of Manipulate. Nil
// fields are ignored.
type ManipulateOptions struct {
	// DeltaMatrix receives the change applied this call, such that
	// delta * previous model == new model.
	DeltaMatrix *mgl32.Mat4
	// Snap steps translation per axis, rotation in degrees (first
	// component) and scale ratio per axis.
	Snap *mgl32.Vec3
	// LocalBounds is a model space box (min xyz, max xyz) with its own
	// resize handles. It is edited in place.
	LocalBounds *[6]float32
	BoundsSnap  *mgl32.Vec3
}

// Manipulate draws the gizmo for model and applies any drag to it. It
// returns true when model or LocalBounds changed in this call.
func (f *Frame) Manipulate(view, proj mgl32.Mat4, op Operation, mode Mode, model *mgl32.Mat4, opts ManipulateOptions) bool {
	f.check()
	if opts.DeltaMatrix != nil {
		*opts.DeltaMatrix = mgl32.Ident4()
	}
	if model == nil {
		return false
	}
	if op == Scale {
		mode = Local
	}
	bounds := opts.LocalBounds
	if op == Bounds && bounds == nil {
		return false
	}

	g := f.g
	d := &g.drag
	c := newManipContext(&g.style, f.rect, f.ortho, &f.in, view, proj, *model, mode)
	using := d.capturing(f.id)
	if using && d.handle.Operation() != Bounds && d.handle.Operation() != op {
		g.ResetDrag()
		using = false
	}

	if !c.drawable || !c.interactive {
		if !g.degenerate {
			g.logger.Debugf("gizmo %s: degenerate matrices, interaction skipped", g.ID)
			g.degenerate = true
		}
		if using {
			g.ResetDrag()
		}
		if c.drawable {
			c.computeAxes(g.allowAxisFlip)
			f.drawOp(c, op, bounds, handleState{}, nil)
		}
		return false
	}
	if g.degenerate {
		g.logger.Debugf("gizmo %s: matrices valid again", g.ID)
		g.degenerate = false
	}
	if !using && c.behindCamera() {
		return false
	}

	c.computeAxes(g.allowAxisFlip)
	if using {
		c.restoreAxes(&d.start)
	}

	var hover candidate
	var hovering bool
	if !using {
		hover, hovering = pickHandle(c.candidates(handleOp(op), bounds), g.style.TieEpsilon)
	}
	f.last, f.lastBounds = c, bounds

	ev := pointerEvent{
		id:          f.id,
		down:        f.in.Down(MouseButtonLeft),
		pressed:     f.in.Clicked(MouseButtonLeft),
		hover:       hover,
		hovering:    hovering,
		canActivate: g.enabled && c.over,
	}

	changed := false
	switch d.advance(ev) {
	case transitionBegin:
		d.start = c.snapshot(mode)
		if !f.beginDrag(c, d, hover, bounds) {
			d.reset()
			break
		}
		g.logger.Debugf("gizmo %s: begin %s drag (id %d)", g.ID, d.handle, f.id)
		hovering = false
	case transitionContinue:
		changed = f.applyDrag(c, d, model, opts)
		if changed && d.handle.Operation() != Bounds {
			c = newManipContext(&g.style, f.rect, f.ortho, &f.in, view, proj, *model, mode)
			c.restoreAxes(&d.start)
			f.last = c
		}
	case transitionEnd:
		g.logger.Debugf("gizmo %s: end %s drag", g.ID, d.handle)
		d.reset()
	}

	st := handleState{enabled: g.enabled}
	if d.capturing(f.id) {
		// the captured handle stays under the pointer for the whole drag
		st.active = d.handle
		f.hovered = true
	} else if hovering {
		st.hovered = hover.handle
		f.hovered = true
	}
	f.drawOp(c, op, bounds, st, hover.bounds)
	return changed
}

// handleOp is the operation whose gizmo handles are hit-tested. Bounds
// has none besides the box.
func handleOp(op Operation) Operation {
	if op == Bounds {
		return -1
	}
	return op
}

func (f *Frame) beginDrag(c *manipContext, d *dragState, hover candidate, bounds *[6]float32) bool {
	switch d.handle.Operation() {
	case Translate:
		return c.beginTranslate(d)
	case Rotate:
		return c.beginRotate(d)
	case Scale:
		return c.beginScale(d)
	default:
		return c.beginBounds(d, hover.bounds, bounds)
	}
}

func (f *Frame) applyDrag(c *manipContext, d *dragState, model *mgl32.Mat4, opts ManipulateOptions) bool {
	if d.handle.Operation() == Bounds {
		if opts.LocalBounds == nil {
			return false
		}
		return c.applyBounds(d, opts.LocalBounds, opts.BoundsSnap)
	}

	var next mgl32.Mat4
	var ok bool
	switch d.handle.Operation() {
	case Translate:
		next, ok = c.applyTranslate(d, opts.Snap)
	case Rotate:
		next, ok = c.applyRotate(d, opts.Snap)
	case Scale:
		next, ok = c.applyScale(d, opts.Snap)
	}
	if !ok || !math3d.IsFinite(next) || next == *model {
		return false
	}
	if opts.DeltaMatrix != nil {
		if prevInv, invertible := math3d.Inverse(*model); invertible {
			*opts.DeltaMatrix = next.Mul4(prevInv)
		}
	}
	*model = next
	return true
}

func (f *Frame) drawOp(c *manipContext, op Operation, bounds *[6]float32, st handleState, hoverBounds *boundsPick) {
	l := f.list
	l.PushClipRect(c.rect.Min(), c.rect.Max())
	defer l.PopClipRect()

	d := &f.g.drag
	switch op {
	case Translate:
		c.drawTranslate(l, st, d)
	case Rotate:
		c.drawRotate(l, st, d)
	case Scale:
		c.drawScale(l, st, d)
	}
	if bounds != nil {
		var hb *boundsPick
		if st.hovered == HandleBoundsCorner || st.hovered == HandleBoundsEdge {
			hb = hoverBounds
		}
		c.drawBounds(l, st, d, bounds, hb)
	}
}
