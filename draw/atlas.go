package draw

import (
	"fmt"
	"image"
	imagedraw "image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the label size in pixels used by the gizmo.
const DefaultFontSize = 13

type Glyph struct {
	UVMin [2]float32
	UVMax [2]float32
	Size  [2]float32
	Off   [2]float32
	Adv   float32
}

// Atlas is an alpha texture holding printable ASCII glyphs plus a fully
// opaque texel used by untextured geometry.
type Atlas struct {
	Image   *image.Alpha
	Glyphs  map[rune]Glyph
	WhiteUV [2]float32

	ascent     float32
	lineHeight float32
}

// NewDefaultAtlas rasterizes the Go regular font.
func NewDefaultAtlas(size float64) (*Atlas, error) {
	return NewAtlas(goregular.TTF, size)
}

// NewAtlas rasterizes a TrueType/OpenType font at the given pixel size.
func NewAtlas(ttf []byte, size float64) (*Atlas, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	const atlasSize = 256
	img := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))

	// 2x2 white block in the corner; sample its center.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Pix[y*img.Stride+x] = 0xff
		}
	}

	a := &Atlas{
		Image:   img,
		Glyphs:  make(map[rune]Glyph),
		WhiteUV: [2]float32{1.0 / atlasSize, 1.0 / atlasSize},
	}

	x, y := 4, 2
	rowHeight := 0
	for r := rune(32); r < 127; r++ {
		bounds, mask, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := mask.Bounds().Dx(), mask.Bounds().Dy()

		if x+w >= atlasSize {
			x = 2
			y += rowHeight + 2
			rowHeight = 0
		}
		if y+h >= atlasSize {
			return nil, fmt.Errorf("font size %.1f does not fit a %dpx atlas", size, atlasSize)
		}

		imagedraw.Draw(img, image.Rect(x, y, x+w, y+h), mask, mask.Bounds().Min, imagedraw.Src)

		a.Glyphs[r] = Glyph{
			UVMin: [2]float32{float32(x) / atlasSize, float32(y) / atlasSize},
			UVMax: [2]float32{float32(x+w) / atlasSize, float32(y+h) / atlasSize},
			Size:  [2]float32{float32(w), float32(h)},
			Off:   [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			Adv:   float32(adv) / 64,
		}

		x += w + 2
		if h > rowHeight {
			rowHeight = h
		}
	}

	m := face.Metrics()
	a.ascent = float32(m.Ascent.Ceil())
	a.lineHeight = float32(m.Height.Ceil())
	return a, nil
}

func (a *Atlas) LineHeight() float32 {
	if a == nil {
		return DefaultFontSize
	}
	return a.lineHeight
}

// MeasureText returns the pixel extent of text.
func (a *Atlas) MeasureText(text string) (float32, float32) {
	if a == nil {
		return float32(len(text)) * 7, DefaultFontSize
	}
	var maxW, w float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			maxW = max(maxW, w)
			w = 0
			lines++
			continue
		}
		if g, ok := a.Glyphs[r]; ok {
			w += g.Adv
		}
	}
	return max(maxW, w), a.lineHeight * float32(lines)
}
