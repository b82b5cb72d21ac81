package gizmo

import "github.com/go-gl/mathgl/mgl32"

// ManipulateConfig gathers every Manipulate argument besides the matrices.
type ManipulateConfig struct {
	Projection Projection
	Operation  Operation
	Mode       Mode
	// Windowed takes the rect from the UI window instead of the display.
	Windowed   bool
	Snap       *mgl32.Vec3
	Bounds     *[6]float32
	BoundsSnap *mgl32.Vec3
	Delta      *mgl32.Mat4
}

func DefaultManipulateConfig() ManipulateConfig {
	return ManipulateConfig{
		Projection: PerspectiveProjection{Fovy: 45},
		Operation:  Rotate,
		Mode:       Local,
	}
}

// Builder is a chained front end to Frame.Manipulate that derives the
// viewport and projection matrix itself.
type Builder struct {
	f    *Frame
	view mgl32.Mat4
	cfg  ManipulateConfig
}

func (f *Frame) Builder(view mgl32.Mat4) *Builder {
	f.check()
	return &Builder{f: f, view: view, cfg: DefaultManipulateConfig()}
}

func (b *Builder) Config(cfg ManipulateConfig) *Builder {
	b.cfg = cfg
	return b
}

func (b *Builder) Projection(p Projection) *Builder {
	b.cfg.Projection = p
	return b
}

func (b *Builder) Operation(op Operation) *Builder {
	b.cfg.Operation = op
	return b
}

func (b *Builder) Mode(m Mode) *Builder {
	b.cfg.Mode = m
	return b
}

func (b *Builder) Windowed(windowed bool) *Builder {
	b.cfg.Windowed = windowed
	return b
}

func (b *Builder) Snap(v *mgl32.Vec3) *Builder {
	b.cfg.Snap = v
	return b
}

func (b *Builder) Bounds(bounds *[6]float32) *Builder {
	b.cfg.Bounds = bounds
	return b
}

func (b *Builder) BoundsSnap(v *mgl32.Vec3) *Builder {
	b.cfg.BoundsSnap = v
	return b
}

func (b *Builder) Delta(m *mgl32.Mat4) *Builder {
	b.cfg.Delta = m
	return b
}

// ProjectionMatrix returns the matrix Manipulate will use for the
// configured rect.
func (b *Builder) ProjectionMatrix() mgl32.Mat4 {
	return b.projection().Matrix(b.rect())
}

func (b *Builder) projection() Projection {
	if b.cfg.Projection == nil {
		return DefaultManipulateConfig().Projection
	}
	return b.cfg.Projection
}

func (b *Builder) rect() Rect {
	if b.cfg.Windowed {
		return RectFromWindow(&b.f.in)
	}
	return RectFromDisplay(&b.f.in)
}

// Manipulate sets the frame rect and projection mode, then runs
// Frame.Manipulate on model.
func (b *Builder) Manipulate(model *mgl32.Mat4) bool {
	f := b.f
	f.check()
	r := b.rect()
	p := b.projection()
	f.SetRect(r.X, r.Y, r.Width, r.Height)
	f.SetOrthographic(p.Orthographic())
	return f.Manipulate(b.view, p.Matrix(r), b.cfg.Operation, b.cfg.Mode, model, ManipulateOptions{
		DeltaMatrix: b.cfg.Delta,
		Snap:        b.cfg.Snap,
		LocalBounds: b.cfg.Bounds,
		BoundsSnap:  b.cfg.BoundsSnap,
	})
}
