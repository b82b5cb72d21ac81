package main

import (
	"github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/draw"
	"github.com/gekko3d/gizmo/platform"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	cameraFovy      = 27
	orthoViewWidth  = 10
	gridSize        = 10
	viewCubeSize    = 128
	rotationSnapDeg = 15
)

var (
	cameraEye      = mgl32.Vec3{8, 8, 8}
	cubeBackground = draw.ColorU32(0x10101010)
	translateSnap  = mgl32.Vec3{1, 1, 1}
	scaleSnap      = mgl32.Vec3{0.1, 0.1, 0.1}
	boundsSnap     = mgl32.Vec3{0.1, 0.1, 0.1}
)

// demo is the scene edited by the gizmo: one cube, a grid and a camera
// orbiting the origin.
type demo struct {
	giz    *gizmo.Gizmo
	logger gizmo.Logger

	view     mgl32.Mat4
	distance float32
	model    mgl32.Mat4
	bounds   [6]float32

	op    gizmo.Operation
	mode  gizmo.Mode
	snap  bool
	ortho bool
	grid  bool

	panel *panel
	ui    *draw.List
}

func newDemo(g *gizmo.Gizmo, logger gizmo.Logger, ortho bool) *demo {
	d := &demo{
		giz:      g,
		logger:   logger,
		view:     mgl32.LookAtV(cameraEye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		distance: cameraEye.Len(),
		model:    mgl32.Ident4(),
		bounds:   [6]float32{-0.5, -0.5, -0.5, 0.5, 0.5, 0.5},
		op:       gizmo.Translate,
		mode:     gizmo.Local,
		ortho:    ortho,
		grid:     true,
		panel:    &panel{origin: mgl32.Vec2{10, 10}},
		ui:       draw.NewList(),
	}
	for _, op := range []struct {
		label string
		op    gizmo.Operation
	}{
		{"Translate (T)", gizmo.Translate},
		{"Rotate (E)", gizmo.Rotate},
		{"Scale (R)", gizmo.Scale},
		{"Bounds (B)", gizmo.Bounds},
	} {
		d.panel.add(op.label, func() bool { return d.op == op.op }, func() { d.setOperation(op.op) })
	}
	d.panel.add("Local", func() bool { return d.mode == gizmo.Local }, func() { d.mode = gizmo.Local })
	d.panel.add("World", func() bool { return d.mode == gizmo.World }, func() { d.mode = gizmo.World })
	d.panel.add("Snap (S)", func() bool { return d.snap }, d.toggleSnap)
	d.panel.add("Orthographic (P)", func() bool { return d.ortho }, d.toggleOrtho)
	d.panel.add("Grid (G)", func() bool { return d.grid }, func() { d.grid = !d.grid })
	return d
}

func (d *demo) setOperation(op gizmo.Operation) {
	if d.op != op {
		d.logger.Infof("operation %s", op)
	}
	d.op = op
}

func (d *demo) toggleSnap() {
	d.snap = !d.snap
	d.logger.Infof("snap %t", d.snap)
}

func (d *demo) toggleOrtho() {
	d.ortho = !d.ortho
	d.logger.Infof("orthographic %t", d.ortho)
}

// handleKey applies the keyboard shortcuts shown in the panel.
func (d *demo) handleKey(k platform.Key) {
	switch k {
	case platform.KeyT:
		d.setOperation(gizmo.Translate)
	case platform.KeyE:
		d.setOperation(gizmo.Rotate)
	case platform.KeyR:
		d.setOperation(gizmo.Scale)
	case platform.KeyB:
		d.setOperation(gizmo.Bounds)
	case platform.KeyS:
		d.toggleSnap()
	case platform.KeyP:
		d.toggleOrtho()
	case platform.KeyG:
		d.grid = !d.grid
	}
}

func (d *demo) projection() gizmo.Projection {
	if d.ortho {
		return gizmo.OrthographicProjection{ViewWidth: orthoViewWidth}
	}
	return gizmo.PerspectiveProjection{Fovy: cameraFovy}
}

func (d *demo) snapValues() *mgl32.Vec3 {
	if !d.snap {
		return nil
	}
	var s mgl32.Vec3
	switch d.op {
	case gizmo.Rotate:
		s = mgl32.Vec3{rotationSnapDeg, rotationSnapDeg, rotationSnapDeg}
	case gizmo.Scale:
		s = scaleSnap
	default:
		s = translateSnap
	}
	return &s
}

// frame runs one UI frame: panel, grid, cube, gizmo and view cube. It
// returns whether the gizmo changed the model.
func (d *demo) frame(in gizmo.Input) bool {
	if d.panel.update(&in, d.giz.Using()) {
		in.WantCaptureMouse = true
	}

	f := d.giz.BeginFrame(&in)
	b := f.Builder(d.view).Projection(d.projection()).Operation(d.op).Mode(d.mode).Snap(d.snapValues())
	if d.op == gizmo.Bounds {
		b.Bounds(&d.bounds)
		if d.snap {
			s := boundsSnap
			b.BoundsSnap(&s)
		}
	}
	proj := b.ProjectionMatrix()

	if d.grid {
		f.DrawGrid(d.view, proj, mgl32.Ident4(), gridSize)
	}
	f.DrawCube(d.view, proj, d.model)
	changed := b.Manipulate(&d.model)

	r := f.Rect()
	f.ViewManipulate(&d.view, d.distance, mgl32.Vec2{r.X + r.Width - viewCubeSize, r.Y}, mgl32.Vec2{viewCubeSize, viewCubeSize}, cubeBackground)

	d.ui.Reset()
	d.panel.draw(d.ui, d.giz.Style())
	return changed
}

// lists returns the draw lists of the last frame in paint order.
func (d *demo) lists() []*draw.List {
	return []*draw.List{d.giz.Overlay(), d.ui}
}
