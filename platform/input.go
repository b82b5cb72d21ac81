package platform

import (
	"github.com/gekko3d/gizmo"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type Key int

const (
	KeyT Key = iota
	KeyE
	KeyR
	KeyB
	KeyS
	KeyG
	KeyP
	KeyEscape
	keyCount
)

var keyToGlfw = [keyCount]glfw.Key{
	KeyT:      glfw.KeyT,
	KeyE:      glfw.KeyE,
	KeyR:      glfw.KeyR,
	KeyB:      glfw.KeyB,
	KeyS:      glfw.KeyS,
	KeyG:      glfw.KeyG,
	KeyP:      glfw.KeyP,
	KeyEscape: glfw.KeyEscape,
}

var buttonToGlfw = [...]struct {
	button gizmo.MouseButton
	glfw   glfw.MouseButton
}{
	{gizmo.MouseButtonLeft, glfw.MouseButtonLeft},
	{gizmo.MouseButtonRight, glfw.MouseButtonRight},
	{gizmo.MouseButtonMiddle, glfw.MouseButtonMiddle},
}

// Keys holds keyboard state with per-frame edges.
type Keys struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool
}

func (k *Keys) set(key Key, down bool) {
	k.JustPressed[key] = down && !k.Pressed[key]
	k.JustReleased[key] = !down && k.Pressed[key]
	k.Pressed[key] = down
}

// Hit reports whether key went down this frame.
func (k *Keys) Hit(key Key) bool { return k.JustPressed[key] }

// Poller reads GLFW state once per frame into a gizmo.Input.
type Poller struct {
	win   *Window
	Keys  Keys
	first bool
}

func NewPoller(win *Window) *Poller {
	return &Poller{win: win, first: true}
}

// Poll pumps the event queue and refreshes in. Mouse coordinates are
// scaled to framebuffer pixels so they match the render target.
func (p *Poller) Poll(in *gizmo.Input, dt float32) {
	glfw.PollEvents()
	w := p.win.Glfw

	for key, g := range keyToGlfw {
		p.Keys.set(Key(key), w.GetKey(g) == glfw.Press)
	}

	ww, wh := w.GetSize()
	fw, fh := w.GetFramebufferSize()
	mx, my := w.GetCursorPos()
	pos := framebufferPoint(mx, my, ww, wh, fw, fh)
	if p.first {
		in.Mouse = pos
		p.first = false
	}
	in.MoveMouse(pos)

	for _, b := range buttonToGlfw {
		in.Press(b.button, w.GetMouseButton(b.glfw) == glfw.Press)
	}

	in.DisplayWidth, in.DisplayHeight = float32(fw), float32(fh)
	in.DeltaTime = dt
}

func framebufferPoint(x, y float64, ww, wh, fw, fh int) mgl32.Vec2 {
	sx, sy := 1.0, 1.0
	if ww > 0 && wh > 0 {
		sx, sy = float64(fw)/float64(ww), float64(fh)/float64(wh)
	}
	return mgl32.Vec2{float32(x * sx), float32(y * sy)}
}
