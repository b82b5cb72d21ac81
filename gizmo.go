// Package gizmo is an immediate-mode 3D transform gizmo. Each frame the
// host passes view, projection and model matrices; the gizmo draws its
// handles into a draw.List and rewrites the model while a handle is
// dragged.
package gizmo

import (
	"errors"

	"github.com/gekko3d/gizmo/draw"
	"github.com/google/uuid"
)

// ErrNoActiveFrame is the panic value for calls on a Frame that is nil or
// was superseded by a later BeginFrame.
var ErrNoActiveFrame = errors.New("gizmo: no active frame")

// Gizmo owns everything that survives between frames: the drag capture,
// the enabled flag, view cube state and the overlay draw list.
type Gizmo struct {
	ID uuid.UUID

	style  Style
	logger Logger

	enabled       bool
	allowAxisFlip bool

	overlay *draw.List
	seq     uint64

	drag dragState
	cube viewCube
	// degenerate is set while matrices keep failing validation so the
	// skip is logged once.
	degenerate bool
}

type Option func(*Gizmo)

func WithStyle(s Style) Option {
	return func(g *Gizmo) { g.style = s }
}

func WithLogger(l Logger) Option {
	return func(g *Gizmo) {
		if l != nil {
			g.logger = l
		}
	}
}

func WithID(id uuid.UUID) Option {
	return func(g *Gizmo) { g.ID = id }
}

// New returns an enabled gizmo with the default style.
func New(opts ...Option) *Gizmo {
	g := &Gizmo{
		ID:            uuid.New(),
		style:         DefaultStyle(),
		logger:        NewNopLogger(),
		enabled:       true,
		allowAxisFlip: true,
		overlay:       draw.NewList(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gizmo) Style() *Style { return &g.style }

func (g *Gizmo) Logger() Logger { return g.logger }

// Overlay returns the full-screen list the current frame draws into unless
// redirected with Frame.SetDrawList.
func (g *Gizmo) Overlay() *draw.List { return g.overlay }

func (g *Gizmo) Enabled() bool { return g.enabled }

// Using reports whether a handle is captured, regardless of frame.
func (g *Gizmo) Using() bool { return g.drag.phase == dragCapturing }

// ResetDrag drops any captured handle.
func (g *Gizmo) ResetDrag() {
	if g.drag.phase == dragCapturing {
		g.logger.Debugf("gizmo %s: drag %s reset", g.ID, g.drag.handle)
	}
	g.drag.reset()
}

// BeginFrame starts a new frame. It clears the overlay and every per-frame
// setting and invalidates the previous Frame. Drag and view cube state
// carry over.
func (g *Gizmo) BeginFrame(in *Input) *Frame {
	g.seq++
	g.overlay.Reset()
	f := &Frame{g: g, seq: g.seq, list: g.overlay}
	if in != nil {
		f.in = *in
	}
	f.rect = RectFromDisplay(&f.in)
	return f
}
