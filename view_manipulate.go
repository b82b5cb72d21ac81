package gizmo

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/gizmo/draw"
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type cubePhase int

const (
	cubeIdle cubePhase = iota
	cubePressed
	cubeDragging
)

const (
	cubeDistance = 3
	orbitRate    = 0.01
	poleLimit    = 0.99
)

// panelEdges split each cube face into a 3x3 grid: thin edge and corner
// strips around a large center panel.
var panelEdges = [4]float32{0, 0.25, 0.75, 1}

// viewCube is the interaction state of the view manipulator.
type viewCube struct {
	phase cubePhase
	box   int
	press mgl32.Vec2
	last  mgl32.Vec2
	anim  *cubeAnim
}

// cubeAnim eases the camera direction toward a snapped view.
type cubeAnim struct {
	tween    *gween.Tween
	from, to mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3
	distance float32
}

// cubePanel is one projected, camera facing cell of a cube face.
type cubePanel struct {
	box    int
	face   int
	screen [4]mgl32.Vec2
}

// cubeCamera renders the unit cube from a fixed distance along the host
// camera's viewing direction.
type cubeCamera struct {
	view, viewProj mgl32.Mat4
	rect           Rect
}

// cubeFovy frames the cube so its corners stay inside the viewport for
// every orientation.
var cubeFovy = 2 * mgl32.RadToDeg(math32.Acos(cubeDistance/math32.Sqrt(cubeDistance*cubeDistance+3))) / math32.Sqrt2

func newCubeCamera(viewInv mgl32.Mat4, r Rect) cubeCamera {
	back := math3d.SafeNormalize(viewInv.Col(2).Vec3(), mgl32.Vec3{0, 0, 1})
	up := math3d.SafeNormalize(viewInv.Col(1).Vec3(), mgl32.Vec3{0, 1, 0})
	view := mgl32.LookAtV(back.Mul(cubeDistance), mgl32.Vec3{}, up)
	proj := math3d.Perspective(cubeFovy, r.Aspect(), 0.01, 1000)
	return cubeCamera{view: view, viewProj: proj.Mul4(view), rect: r}
}

// boxIndex packs the 3x3x3 cell coordinates of a face, edge or corner.
func boxIndex(c [3]int) int { return c[0]*9 + c[1]*3 + c[2] }

// boxDirection is the direction from the cube center toward box.
func boxDirection(box int) mgl32.Vec3 {
	c := [3]int{box / 9, box / 3 % 3, box % 3}
	dir := mgl32.Vec3{float32(1 - c[0]), float32(1 - c[1]), float32(1 - c[2])}
	return math3d.SafeNormalize(dir, mgl32.Vec3{0, 0, 1})
}

// panels returns the camera facing panels of all six faces.
func (cam cubeCamera) panels() []cubePanel {
	out := make([]cubePanel, 0, 27)
	for face := 0; face < 6; face++ {
		k := face / 2
		s := float32(1)
		if face%2 == 1 {
			s = -1
		}
		u, v := (k+1)%3, (k+2)%3
		var n mgl32.Vec3
		n[k] = s
		var center mgl32.Vec3
		center[k] = s * 0.5
		nView := math3d.TransformVector(cam.view, n)
		if nView.Dot(math3d.TransformPoint(cam.view, center)) >= 0 {
			continue
		}
		for iu := 0; iu < 3; iu++ {
			for iv := 0; iv < 3; iv++ {
				var cell [3]int
				cell[k] = int(1 - s)
				cell[u] = 2 - iu
				cell[v] = 2 - iv
				p := cubePanel{box: boxIndex(cell), face: face}
				ok := true
				for q, uv := range [4][2]int{{iu, iv}, {iu + 1, iv}, {iu + 1, iv + 1}, {iu, iv + 1}} {
					var w mgl32.Vec3
					w[k] = s * 0.5
					w[u] = panelEdges[uv[0]] - 0.5
					w[v] = panelEdges[uv[1]] - 0.5
					var front bool
					p.screen[q], front = projectToRect(cam.viewProj, w, cam.rect)
					ok = ok && front
				}
				if ok {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

func hoveredBox(panels []cubePanel, mouse mgl32.Vec2) int {
	for _, p := range panels {
		if math3d.PointInQuad(mouse, p.screen[0], p.screen[1], p.screen[2], p.screen[3]) {
			return p.box
		}
	}
	return -1
}

// ViewManipulate draws the view cube into the square at pos and lets the
// user snap or orbit view around a target cameraDistance in front of it.
func (f *Frame) ViewManipulate(view *mgl32.Mat4, cameraDistance float32, pos, size mgl32.Vec2, background draw.Color) {
	f.ViewManipulateDetailed(view, cameraDistance, pos, size, background)
}

// ViewManipulateDetailed is ViewManipulate reporting whether view changed.
func (f *Frame) ViewManipulateDetailed(view *mgl32.Mat4, cameraDistance float32, pos, size mgl32.Vec2, background draw.Color) bool {
	f.check()
	r := Rect{X: pos[0], Y: pos[1], Width: size[0], Height: size[1]}
	l := f.list
	l.PushClipRect(r.Min(), r.Max())
	defer l.PopClipRect()
	l.AddRectFilled(r.Min(), r.Max(), background)

	if view == nil || r.Empty() || !math3d.IsFinite(*view) {
		return false
	}
	viewInv, ok := math3d.Inverse(*view)
	if !ok {
		return false
	}

	g := f.g
	cube := &g.cube
	changed := false
	if cube.anim != nil {
		changed = cube.step(view, f.in.DeltaTime)
	}

	mouse := f.in.Mouse
	over := r.Contains(mouse) && !f.in.WantCaptureMouse
	hovered := -1
	if over {
		hovered = hoveredBox(newCubeCamera(viewInv, r).panels(), mouse)
	}

	switch cube.phase {
	case cubeIdle:
		if over && f.in.Clicked(MouseButtonLeft) && cube.anim == nil {
			cube.phase = cubePressed
			cube.box = hovered
			cube.press, cube.last = mouse, mouse
		}
	case cubePressed:
		switch {
		case !f.in.Down(MouseButtonLeft):
			cube.phase = cubeIdle
			if cube.box >= 0 {
				changed = g.snapView(view, cameraDistance, cube.box) || changed
			}
		case mouse.Sub(cube.press).Len() > g.style.ViewDragThreshold:
			cube.phase = cubeDragging
			changed = orbitView(view, cameraDistance, mouse.Sub(cube.last)) || changed
			cube.last = mouse
		}
	case cubeDragging:
		if !f.in.Down(MouseButtonLeft) {
			cube.phase = cubeIdle
			break
		}
		if d := mouse.Sub(cube.last); d.LenSqr() > 0 {
			changed = orbitView(view, cameraDistance, d) || changed
		}
		cube.last = mouse
	}

	if changed {
		if viewInv, ok = math3d.Inverse(*view); !ok {
			return changed
		}
	}
	if cube.phase == cubeDragging {
		hovered = -1
	}
	g.drawCube(l, newCubeCamera(viewInv, r).panels(), hovered)
	return changed
}

func (g *Gizmo) drawCube(l *draw.List, panels []cubePanel, hovered int) {
	colors := &g.style.Colors
	border := colors.TextShadow.WithAlpha(0.35)
	for _, p := range panels {
		col := colors.Axis[p.face/2].WithAlpha(1)
		if p.face%2 == 1 {
			col = col.Scale(0.7)
		}
		if p.box == hovered {
			col = colors.CubeHover
		}
		pts := p.screen[:]
		l.AddConvexPolyFilled(pts, col)
		l.AddPolyline(pts, border, true, 1)
	}
}

// snapView points the camera at its target from the direction of box.
func (g *Gizmo) snapView(view *mgl32.Mat4, distance float32, box int) bool {
	viewInv, ok := math3d.Inverse(*view)
	if !ok {
		return false
	}
	back := math3d.SafeNormalize(viewInv.Col(2).Vec3(), mgl32.Vec3{0, 0, 1})
	target := viewInv.Col(3).Vec3().Sub(back.Mul(distance))
	dir := boxDirection(box)
	up := pickUp(dir, viewInv.Col(1).Vec3(), back.Mul(-1))

	if g.style.ViewTransition > 0 {
		g.cube.anim = &cubeAnim{
			tween:    gween.New(0, 1, g.style.ViewTransition, ease.OutCubic),
			from:     back,
			to:       dir,
			target:   target,
			up:       up,
			distance: distance,
		}
		return false
	}
	*view = mgl32.LookAtV(target.Add(dir.Mul(distance)), target, up)
	return true
}

// step advances a running snap animation by dt seconds.
func (c *viewCube) step(view *mgl32.Mat4, dt float32) bool {
	a := c.anim
	t, done := a.tween.Update(dt)
	dir := math3d.SafeNormalize(a.from.Mul(1-t).Add(a.to.Mul(t)), a.to)
	if done {
		dir = a.to
		c.anim = nil
	}
	up := a.up
	if math32.Abs(dir.Dot(mgl32.Vec3{0, 1, 0})) <= poleLimit {
		up = mgl32.Vec3{0, 1, 0}
	}
	*view = mgl32.LookAtV(a.target.Add(dir.Mul(a.distance)), a.target, up)
	return true
}

// orbitView yaws about world Y and pitches about the camera right axis,
// keeping the target and distance.
func orbitView(view *mgl32.Mat4, distance float32, delta mgl32.Vec2) bool {
	viewInv, ok := math3d.Inverse(*view)
	if !ok {
		return false
	}
	back := math3d.SafeNormalize(viewInv.Col(2).Vec3(), mgl32.Vec3{0, 0, 1})
	right := math3d.SafeNormalize(viewInv.Col(0).Vec3(), mgl32.Vec3{1, 0, 0})
	up := viewInv.Col(1).Vec3()
	target := viewInv.Col(3).Vec3().Sub(back.Mul(distance))

	yaw := mgl32.HomogRotate3DY(-delta[0] * orbitRate)
	back = math3d.TransformVector(yaw, back)
	right = math3d.TransformVector(yaw, right)
	up = math3d.TransformVector(yaw, up)

	pitch := mgl32.HomogRotate3D(-delta[1]*orbitRate, right)
	if pitched := math3d.TransformVector(pitch, back); math32.Abs(pitched.Dot(mgl32.Vec3{0, 1, 0})) < poleLimit {
		back = pitched
		up = math3d.TransformVector(pitch, up)
	}
	back = math3d.SafeNormalize(back, mgl32.Vec3{0, 0, 1})

	next := mgl32.LookAtV(target.Add(back.Mul(distance)), target, pickUp(back, up, back.Mul(-1)))
	if !math3d.IsFinite(next) || next == *view {
		return false
	}
	*view = next
	return true
}

// pickUp returns world Y unless dir is nearly vertical. Then the previous
// up, or failing that the previous forward, is projected onto the plane
// perpendicular to dir.
func pickUp(dir, prevUp, prevForward mgl32.Vec3) mgl32.Vec3 {
	y := mgl32.Vec3{0, 1, 0}
	if math32.Abs(dir.Dot(y)) <= poleLimit {
		return y
	}
	for _, cand := range [2]mgl32.Vec3{prevUp, prevForward} {
		p := cand.Sub(dir.Mul(cand.Dot(dir)))
		if p.Len() > 1e-3 {
			return p.Normalize()
		}
	}
	return mgl32.Vec3{0, 0, -1}
}
