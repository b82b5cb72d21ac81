package gizmo

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	gridLineThickness  = 1
	gridMajorThickness = 1.5
	gridAxisThickness  = 2.3
	gridMajorEvery     = 10
	// maxGridSteps bounds the lines per direction; larger grids widen
	// the spacing instead.
	maxGridSteps = 4096
)

// DrawCube draws a unit cube centered on model's origin.
func (f *Frame) DrawCube(view, proj, model mgl32.Mat4) {
	f.DrawCubes(view, proj, model)
}

// DrawCubes draws unit cubes, farthest first, with per-face colors. Faces
// turned away from the camera are culled by their screen winding.
func (f *Frame) DrawCubes(view, proj mgl32.Mat4, models ...mgl32.Mat4) {
	f.check()
	if len(models) == 0 {
		return
	}
	viewProj := proj.Mul4(view)
	order := make([]int, len(models))
	depth := make([]float32, len(models))
	for i, m := range models {
		order[i] = i
		depth[i] = view.Mul4x1(m.Col(3)).Z()
	}
	// view space looks down -Z, so more negative is farther
	sort.SliceStable(order, func(a, b int) bool { return depth[order[a]] < depth[order[b]] })

	l := f.list
	l.PushClipRect(f.rect.Min(), f.rect.Max())
	defer l.PopClipRect()

	colors := &f.g.style.Colors
	for _, i := range order {
		mvp := viewProj.Mul4(models[i])
		for face := 0; face < 6; face++ {
			k := face / 2
			u, v := (k+1)%3, (k+2)%3
			s := float32(0.5)
			if face%2 == 1 {
				s = -0.5
				u, v = v, u
			}
			var quad [4]mgl32.Vec2
			visible := true
			for q, uv := range [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}} {
				var p mgl32.Vec3
				p[k], p[u], p[v] = s, uv[0], uv[1]
				var ok bool
				quad[q], ok = projectToRect(mvp, p, f.rect)
				visible = visible && ok
			}
			// counter clockwise seen from outside becomes clockwise once
			// screen y points down
			if !visible || math3d.PolygonArea(quad[:]) >= 0 {
				continue
			}
			col := colors.Axis[k].WithAlpha(1)
			if face%2 == 1 {
				col = col.Scale(0.6)
			}
			l.AddConvexPolyFilled(quad[:], col)
		}
	}
}

// DrawGrid draws a grid in the XZ plane of model, gridSize units to each
// side, clipped to the view frustum.
func (f *Frame) DrawGrid(view, proj, model mgl32.Mat4, gridSize float32) {
	f.check()
	if gridSize <= 0 || !math3d.IsFiniteFloat(gridSize) {
		return
	}
	mvp := proj.Mul4(view).Mul4(model)
	planes := math3d.ExtractFrustumPlanes(mvp)

	l := f.list
	l.PushClipRect(f.rect.Min(), f.rect.Max())
	defer l.PopClipRect()

	span := 2 * gridSize
	step := float32(1)
	if span > maxGridSteps {
		step = math32.Ceil(span / maxGridSteps)
	}
	steps := int(span / step)

	colors := &f.g.style.Colors
	for i := 0; i <= steps; i++ {
		x := -gridSize + float32(i)*step
		col, thickness := colors.Grid, float32(gridLineThickness)
		switch {
		case math32.Abs(x) < math3d.Epsilon:
			col, thickness = colors.GridAxis, gridAxisThickness
		case math32.Mod(math32.Abs(x), gridMajorEvery) < math3d.Epsilon:
			col, thickness = colors.GridMajor, gridMajorThickness
		}
		for _, seg := range [2][2]mgl32.Vec3{
			{{x, 0, -gridSize}, {x, 0, gridSize}},
			{{-gridSize, 0, x}, {gridSize, 0, x}},
		} {
			a, b, ok := math3d.ClipSegment(planes, seg[0], seg[1])
			if !ok {
				continue
			}
			sa, okA := projectToRect(mvp, a, f.rect)
			sb, okB := projectToRect(mvp, b, f.rect)
			if okA && okB {
				l.AddLine(sa, sb, col, thickness)
			}
		}
	}
}
