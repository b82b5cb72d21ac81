package main

import (
	"github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/draw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	panelPadding = 8
	buttonWidth  = 150
	buttonHeight = 22
	buttonGap    = 4
	labelOffsetX = 8
	labelOffsetY = 4
)

var (
	panelBackground = draw.RGBA8(24, 24, 28, 220)
	buttonIdle      = draw.RGBA8(60, 60, 66, 255)
	buttonHover     = draw.RGBA8(85, 85, 95, 255)
	buttonActive    = draw.RGBA8(66, 150, 250, 255)
)

// button is a toggle or radio entry. active reports whether it is
// currently selected.
type button struct {
	label   string
	active  func() bool
	onClick func()

	hovered bool
}

// panel is a column of buttons in the top-left corner of the screen.
type panel struct {
	origin  mgl32.Vec2
	buttons []*button
}

func (p *panel) add(label string, active func() bool, onClick func()) {
	p.buttons = append(p.buttons, &button{label: label, active: active, onClick: onClick})
}

func (p *panel) bounds() (mgl32.Vec2, mgl32.Vec2) {
	n := float32(len(p.buttons))
	h := n*buttonHeight + max(n-1, 0)*buttonGap
	size := mgl32.Vec2{buttonWidth + 2*panelPadding, h + 2*panelPadding}
	return p.origin, p.origin.Add(size)
}

func (p *panel) buttonRect(i int) (mgl32.Vec2, mgl32.Vec2) {
	min := p.origin.Add(mgl32.Vec2{panelPadding, panelPadding + float32(i)*(buttonHeight+buttonGap)})
	return min, min.Add(mgl32.Vec2{buttonWidth, buttonHeight})
}

// update refreshes hover state and runs click handlers. It reports whether
// the pointer is over the panel. Clicks are ignored while capture is set.
func (p *panel) update(in *gizmo.Input, capture bool) bool {
	min, max := p.bounds()
	over := inside(in.Mouse, min, max)
	for i, b := range p.buttons {
		bmin, bmax := p.buttonRect(i)
		b.hovered = !capture && inside(in.Mouse, bmin, bmax)
		if b.hovered && in.Clicked(gizmo.MouseButtonLeft) && b.onClick != nil {
			b.onClick()
		}
	}
	return over && !capture
}

func (p *panel) draw(l *draw.List, style *gizmo.Style) {
	min, max := p.bounds()
	l.AddRectFilled(min, max, panelBackground)
	for i, b := range p.buttons {
		bmin, bmax := p.buttonRect(i)
		col := buttonIdle
		switch {
		case b.active != nil && b.active():
			col = buttonActive
		case b.hovered:
			col = buttonHover
		}
		l.AddRectFilled(bmin, bmax, col)
		l.AddText(bmin.Add(mgl32.Vec2{labelOffsetX, labelOffsetY}), style.Colors.Text, b.label)
	}
}

func inside(p, min, max mgl32.Vec2) bool {
	return p[0] >= min[0] && p[0] <= max[0] && p[1] >= min[1] && p[1] <= max[1]
}
