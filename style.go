package gizmo

import (
	"fmt"
	"io"
	"os"

	"github.com/gekko3d/gizmo/draw"
	"gopkg.in/yaml.v3"
)

// Colors used when drawing handles. Axis colors are indexed X, Y, Z.
type Colors struct {
	Axis           [3]draw.Color `yaml:"axis"`
	Plane          [3]draw.Color `yaml:"plane"`
	Selection      draw.Color    `yaml:"selection"`
	Inactive       draw.Color    `yaml:"inactive"`
	TranslateLine  draw.Color    `yaml:"translate_line"`
	ScaleLine      draw.Color    `yaml:"scale_line"`
	RotationBorder draw.Color    `yaml:"rotation_border"`
	RotationFill   draw.Color    `yaml:"rotation_fill"`
	Screen         draw.Color    `yaml:"screen"`
	Bounds         draw.Color    `yaml:"bounds"`
	Text           draw.Color    `yaml:"text"`
	TextShadow     draw.Color    `yaml:"text_shadow"`
	Grid           draw.Color    `yaml:"grid"`
	GridMajor      draw.Color    `yaml:"grid_major"`
	GridAxis       draw.Color    `yaml:"grid_axis"`
	CubeHover      draw.Color    `yaml:"cube_hover"`
}

// Style holds every tunable size, threshold and color of the gizmo.
// Sizes are pixels unless noted.
type Style struct {
	// GizmoSizeClipSpace is the axis length in clip space units.
	GizmoSizeClipSpace float32 `yaml:"gizmo_size_clip_space"`
	// ScreenRingSize is the free rotation ring radius as a fraction of
	// the viewport height.
	ScreenRingSize float32 `yaml:"screen_ring_size"`
	// RotationRadius scales the per-axis rings relative to the axis length.
	RotationRadius float32 `yaml:"rotation_radius"`

	TranslationLineThickness float32 `yaml:"translation_line_thickness"`
	TranslationArrowSize     float32 `yaml:"translation_arrow_size"`
	RotationLineThickness    float32 `yaml:"rotation_line_thickness"`
	RotationOuterThickness   float32 `yaml:"rotation_outer_thickness"`
	ScaleLineThickness       float32 `yaml:"scale_line_thickness"`
	ScaleCircleSize          float32 `yaml:"scale_circle_size"`
	CenterCircleSize         float32 `yaml:"center_circle_size"`

	HitRadius          float32 `yaml:"hit_radius"`
	RingHitRadius      float32 `yaml:"ring_hit_radius"`
	ScreenRingHitWidth float32 `yaml:"screen_ring_hit_width"`
	CenterHalfSize     float32 `yaml:"center_half_size"`
	BoundsAnchorRadius float32 `yaml:"bounds_anchor_radius"`
	BoundsMidRadius    float32 `yaml:"bounds_mid_radius"`
	// TieEpsilon is the screen distance under which two candidates are
	// considered equally close and depth decides.
	TieEpsilon float32 `yaml:"tie_epsilon"`

	// AxisLimit hides an axis whose projected length drops below this
	// fraction of its full length; PlaneLimit does the same for the
	// projected area of plane handles.
	AxisLimit  float32 `yaml:"axis_limit"`
	PlaneLimit float32 `yaml:"plane_limit"`

	// ViewTransition animates view cube snaps over this many seconds; zero
	// snaps immediately.
	ViewTransition    float32 `yaml:"view_transition"`
	ViewDragThreshold float32 `yaml:"view_drag_threshold"`

	Colors Colors `yaml:"colors"`
}

// DefaultStyle returns the stock look.
func DefaultStyle() Style {
	return Style{
		GizmoSizeClipSpace: 0.1,
		ScreenRingSize:     0.06,
		RotationRadius:     1,

		TranslationLineThickness: 3,
		TranslationArrowSize:     6,
		RotationLineThickness:    2,
		RotationOuterThickness:   3,
		ScaleLineThickness:       3,
		ScaleCircleSize:          6,
		CenterCircleSize:         6,

		HitRadius:          12,
		RingHitRadius:      8,
		ScreenRingHitWidth: 4,
		CenterHalfSize:     10,
		BoundsAnchorRadius: 8,
		BoundsMidRadius:    6,
		TieEpsilon:         0.5,

		AxisLimit:  0.025,
		PlaneLimit: 0.02,

		ViewTransition:    0,
		ViewDragThreshold: 0,

		Colors: Colors{
			Axis: [3]draw.Color{
				{0.666, 0, 0, 1},
				{0, 0.666, 0, 1},
				{0, 0, 0.666, 1},
			},
			Plane: [3]draw.Color{
				{0.666, 0, 0, 0.38},
				{0, 0.666, 0, 0.38},
				{0, 0, 0.666, 0.38},
			},
			Selection:      draw.Color{1, 0.5, 0.062, 0.541},
			Inactive:       draw.Color{0.6, 0.6, 0.6, 0.6},
			TranslateLine:  draw.Color{0.666, 0.666, 0.666, 0.666},
			ScaleLine:      draw.Color{0.25, 0.25, 0.25, 1},
			RotationBorder: draw.Color{1, 0.5, 0.062, 1},
			RotationFill:   draw.Color{1, 0.5, 0.062, 0.5},
			Screen:         draw.Color{1, 1, 1, 1},
			Bounds:         draw.Color{0.666, 0.666, 0.666, 1},
			Text:           draw.Color{1, 1, 1, 1},
			TextShadow:     draw.Color{0, 0, 0, 1},
			Grid:           draw.RGBA8(0x80, 0x80, 0x80, 0xff),
			GridMajor:      draw.RGBA8(0x90, 0x90, 0x90, 0xff),
			GridAxis:       draw.RGBA8(0x40, 0x40, 0x40, 0xff),
			CubeHover:      draw.RGBA8(0xf0, 0xa0, 0x60, 0x80),
		},
	}
}

// LoadStyle decodes a YAML style document on top of DefaultStyle, so a
// file only needs the keys it changes.
func LoadStyle(r io.Reader) (Style, error) {
	s := DefaultStyle()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return DefaultStyle(), fmt.Errorf("decode style: %w", err)
	}
	return s, nil
}

// LoadStyleFile reads a style from path.
func LoadStyleFile(path string) (Style, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultStyle(), fmt.Errorf("open style: %w", err)
	}
	defer f.Close()
	return LoadStyle(f)
}
