package gizmo

import "github.com/go-gl/mathgl/mgl32"

// Rect is a screen-space viewport in pixels, origin at the top-left.
type Rect struct {
	X, Y, Width, Height float32
}

// RectFromDisplay covers the whole display.
func RectFromDisplay(in *Input) Rect {
	return Rect{Width: in.DisplayWidth, Height: in.DisplayHeight}
}

// RectFromWindow covers the UI window reported by the input collaborator.
func RectFromWindow(in *Input) Rect {
	return Rect{X: in.WindowPos[0], Y: in.WindowPos[1], Width: in.WindowSize[0], Height: in.WindowSize[1]}
}

// Aspect is width over height, or 1 for an empty rect.
func (r Rect) Aspect() float32 {
	if r.Height <= 0 || r.Width <= 0 {
		return 1
	}
	return r.Width / r.Height
}

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

func (r Rect) Min() mgl32.Vec2 { return mgl32.Vec2{r.X, r.Y} }
func (r Rect) Max() mgl32.Vec2 { return mgl32.Vec2{r.X + r.Width, r.Y + r.Height} }

func (r Rect) Contains(p mgl32.Vec2) bool {
	return p[0] >= r.X && p[0] <= r.X+r.Width && p[1] >= r.Y && p[1] <= r.Y+r.Height
}
