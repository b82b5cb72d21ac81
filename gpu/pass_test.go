package gpu

import (
	"testing"

	"github.com/gekko3d/gizmo/draw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestScissor(t *testing.T) {
	tests := []struct {
		name       string
		clip       draw.ClipRect
		x, y, w, h uint32
		ok         bool
	}{
		{"inside", draw.ClipRect{Min: mgl32.Vec2{10, 20}, Max: mgl32.Vec2{110, 70}}, 10, 20, 100, 50, true},
		{"unbounded", draw.NoClip, 0, 0, 640, 480, true},
		{"clamped", draw.ClipRect{Min: mgl32.Vec2{-5, 400}, Max: mgl32.Vec2{50, 900}}, 0, 400, 50, 80, true},
		{"outside", draw.ClipRect{Min: mgl32.Vec2{700, 0}, Max: mgl32.Vec2{800, 10}}, 0, 0, 0, 0, false},
		{"inverted", draw.ClipRect{Min: mgl32.Vec2{50, 50}, Max: mgl32.Vec2{10, 10}}, 0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h, ok := scissor(tt.clip, 640, 480)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, [4]uint32{tt.x, tt.y, tt.w, tt.h}, [4]uint32{x, y, w, h})
		})
	}
}

func TestScreenUniformLayout(t *testing.T) {
	u := screenUniform(1280, 720)
	assert.Len(t, u, uniformSize/4)
	assert.Equal(t, []float32{1280, 720, 0, 0}, u)
}
