package gizmo

import "github.com/go-gl/mathgl/mgl32"

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	mouseButtonCount
)

// Input is the per-frame pointer and display snapshot supplied by the host
// (see the platform package for a GLFW implementation).
type Input struct {
	Mouse      mgl32.Vec2
	MouseDelta mgl32.Vec2

	Pressed      [mouseButtonCount]bool
	JustPressed  [mouseButtonCount]bool
	JustReleased [mouseButtonCount]bool

	// WantCaptureMouse is set when another widget owns the pointer; the
	// gizmo then ignores new presses.
	WantCaptureMouse bool

	DisplayWidth, DisplayHeight float32
	WindowPos, WindowSize       mgl32.Vec2

	// DeltaTime is the frame time in seconds.
	DeltaTime float32
}

// Down reports whether b is held.
func (in *Input) Down(b MouseButton) bool { return in.Pressed[b] }

// Clicked reports whether b went down this frame.
func (in *Input) Clicked(b MouseButton) bool { return in.JustPressed[b] }

// Released reports whether b went up this frame.
func (in *Input) Released(b MouseButton) bool { return in.JustReleased[b] }

// Press records a button transition, maintaining the edge flags the way a
// polling backend would.
func (in *Input) Press(b MouseButton, down bool) {
	in.JustPressed[b] = down && !in.Pressed[b]
	in.JustReleased[b] = !down && in.Pressed[b]
	in.Pressed[b] = down
}

// MoveMouse sets the pointer position and derives MouseDelta.
func (in *Input) MoveMouse(p mgl32.Vec2) {
	in.MouseDelta = p.Sub(in.Mouse)
	in.Mouse = p
}
