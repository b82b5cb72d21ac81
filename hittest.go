package gizmo

import (
	"github.com/gekko3d/gizmo/math3d"
	"github.com/go-gl/mathgl/mgl32"
)

// candidate is a handle under the pointer. dist is the screen distance from
// the pointer to the nearest point of the handle (zero inside filled
// handles) and depth the view depth of that point.
type candidate struct {
	handle Handle
	dist   float32
	depth  float32
	bounds *boundsPick
}

// pickHandle selects the closest candidate on screen. Candidates within
// tieEps pixels of each other are ordered by depth, nearest first.
func pickHandle(cands []candidate, tieEps float32) (candidate, bool) {
	if len(cands) == 0 {
		return candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		switch {
		case c.dist < best.dist-tieEps:
			best = c
		case c.dist <= best.dist+tieEps && c.depth < best.depth:
			best = c
		}
	}
	return best, true
}

// candidates collects every handle of op (and of the bounds box when
// bounds is set) the pointer currently overlaps.
func (c *manipContext) candidates(op Operation, bounds *[6]float32) []candidate {
	if !c.interactive || !c.over {
		return nil
	}
	var out []candidate
	switch op {
	case Translate:
		out = c.translateCandidates(out)
	case Rotate:
		out = c.rotateCandidates(out)
	case Scale:
		out = c.scaleCandidates(out)
	}
	if bounds != nil {
		out = c.boundsCandidates(out, bounds)
	}
	return out
}

// axisSegment returns the screen segment of axis i between the fractions
// from and to of the gizmo length.
func (c *manipContext) axisSegment(i int, from, to float32) (a, b mgl32.Vec2, ok bool) {
	dir := c.axisDir[i].Mul(c.screenFactor)
	a, okA := c.worldToScreen(c.position.Add(dir.Mul(from)))
	b, okB := c.worldToScreen(c.position.Add(dir.Mul(to)))
	return a, b, okA && okB
}

// axisCandidate tests the pointer against the screen segment of axis i.
func (c *manipContext) axisCandidate(h Handle, i int, from, to float32) (candidate, bool) {
	a, b, ok := c.axisSegment(i, from, to)
	if !ok {
		return candidate{}, false
	}
	cp := math3d.ClosestPointOnSegment(c.mouse, a, b)
	d := c.mouse.Sub(cp).Len()
	if d >= c.style.HitRadius {
		return candidate{}, false
	}
	t := float32(0)
	if l := b.Sub(a).Len(); l > math3d.Epsilon {
		t = cp.Sub(a).Len() / l
	}
	world := c.position.Add(c.axisDir[i].Mul(c.screenFactor * (from + (to-from)*t)))
	return candidate{handle: h, dist: d, depth: c.viewDepth(world)}, true
}

// centerCandidate tests the pointer against the square around the gizmo
// origin.
func (c *manipContext) centerCandidate(h Handle) (candidate, bool) {
	d := c.mouse.Sub(c.center)
	hs := c.style.CenterHalfSize
	if d[0] < -hs || d[0] > hs || d[1] < -hs || d[1] > hs {
		return candidate{}, false
	}
	return candidate{handle: h, dist: 0, depth: c.viewDepth(c.position)}, true
}

func (c *manipContext) translateCandidates(out []candidate) []candidate {
	if cand, ok := c.centerCandidate(HandleTranslateScreen); ok {
		out = append(out, cand)
	}
	for i := 0; i < 3; i++ {
		if !c.axisVisible[i] {
			continue
		}
		if cand, ok := c.axisCandidate(HandleTranslateX+Handle(i), i, 0.1, 1); ok {
			out = append(out, cand)
		}
	}
	for i := 0; i < 3; i++ {
		if !c.planeVisible[i] {
			continue
		}
		t := math3d.IntersectRayPlane(c.ray, math3d.BuildPlane(c.position, c.axisDir[i]))
		if t < 0 {
			continue
		}
		hit := c.ray.At(t)
		rel := hit.Sub(c.position).Mul(1 / c.screenFactor)
		u := c.axisDir[(i+1)%3].Dot(rel)
		v := c.axisDir[(i+2)%3].Dot(rel)
		if u >= planeQuadMin && u <= planeQuadMax && v >= planeQuadMin && v <= planeQuadMax {
			out = append(out, candidate{handle: HandleTranslateYZ + Handle(i), dist: 0, depth: c.viewDepth(hit)})
		}
	}
	return out
}

func (c *manipContext) rotateCandidates(out []candidate) []candidate {
	radius := c.style.ScreenRingSize * c.rect.Height
	d := c.mouse.Sub(c.center).Len()
	if off := absf(d - radius); off < c.style.ScreenRingHitWidth {
		out = append(out, candidate{handle: HandleRotateScreen, dist: off, depth: c.viewDepth(c.position)})
	}

	centerDepth := c.viewDepth(c.position)
	for i := 0; i < 3; i++ {
		t := math3d.IntersectRayPlane(c.ray, math3d.BuildPlane(c.position, c.axes[i]))
		if t < 0 {
			continue
		}
		hit := c.ray.At(t)
		// the far half of the ring is not drawn
		if c.viewDepth(hit) > centerDepth+math3d.Epsilon {
			continue
		}
		local := hit.Sub(c.position)
		if local.Len() < math3d.Epsilon {
			continue
		}
		ideal := c.position.Add(local.Normalize().Mul(c.screenFactor * c.style.RotationRadius))
		s, ok := c.worldToScreen(ideal)
		if !ok {
			continue
		}
		if dist := s.Sub(c.mouse).Len(); dist < c.style.RingHitRadius {
			out = append(out, candidate{handle: HandleRotateX + Handle(i), dist: dist, depth: c.viewDepth(ideal)})
		}
	}
	return out
}

func (c *manipContext) scaleCandidates(out []candidate) []candidate {
	if cand, ok := c.centerCandidate(HandleScaleXYZ); ok {
		out = append(out, cand)
	}
	for i := 0; i < 3; i++ {
		if !c.axisVisible[i] {
			continue
		}
		if cand, ok := c.axisCandidate(HandleScaleX+Handle(i), i, 0.1, 1); ok {
			out = append(out, cand)
		}
	}
	return out
}

const (
	planeQuadMin = 0.5
	planeQuadMax = 0.8
)

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
