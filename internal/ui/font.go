package ui

import (
	"image"
	"image/color"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph placement inside the atlas, normalized texture coordinates plus
// pixel metrics.
type Glyph struct {
	U0, V0, U1, V1 float32
	W, H           float32
	Advance        float32
}

// Atlas is the baked glyph sheet the UI draws text from. It also carries a
// solid white region so untextured quads and text share one texture and
// one draw batch.
type Atlas struct {
	Pix    []uint8 // RGBA, tightly packed
	Width  int
	Height int

	glyphs  map[rune]Glyph
	WhiteUV [2]float32

	GlyphWidth float32
	LineHeight float32
}

const (
	atlasCols  = 16
	atlasSize  = 128
	cellWidth  = 8
	cellHeight = 14
)

// BuildAtlas bakes the printable ASCII range of a fixed 7x13 face into an
// RGBA sheet. No font asset is needed; the face is compiled in.
func BuildAtlas() *Atlas {
	face := basicfont.Face7x13
	img := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	a := &Atlas{
		Width:      atlasSize,
		Height:     atlasSize,
		glyphs:     make(map[rune]Glyph, 95),
		GlyphWidth: float32(face.Advance),
		LineHeight: float32(face.Height),
	}

	ascent := face.Ascent
	for i := 0; i < 95; i++ {
		r := rune(32 + i)
		cx := (i % atlasCols) * cellWidth
		cy := (i / atlasCols) * cellHeight

		drawer.Dot = fixed.P(cx, cy+ascent)
		drawer.DrawString(string(r))

		a.glyphs[r] = Glyph{
			U0:      float32(cx) / atlasSize,
			V0:      float32(cy) / atlasSize,
			U1:      float32(cx+face.Advance) / atlasSize,
			V1:      float32(cy+face.Height) / atlasSize,
			W:       float32(face.Advance),
			H:       float32(face.Height),
			Advance: float32(face.Advance),
		}
	}

	// Solid white block in the unused bottom rows, for untextured quads.
	wx, wy := atlasSize-8, atlasSize-8
	for y := wy; y < wy+4; y++ {
		for x := wx; x < wx+4; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	a.WhiteUV = [2]float32{
		(float32(wx) + 2) / atlasSize,
		(float32(wy) + 2) / atlasSize,
	}

	a.Pix = img.Pix
	return a
}

// Glyph looks up a rune; unknown runes fall back to '?'.
func (a *Atlas) Glyph(r rune) Glyph {
	if g, ok := a.glyphs[r]; ok {
		return g
	}
	return a.glyphs['?']
}

// MeasureText returns the pixel box of a single-line string. Runes are
// counted, not bytes, to match what Tessellate draws.
func (a *Atlas) MeasureText(s string) (w, h float32) {
	return float32(utf8.RuneCountInString(s)) * a.GlyphWidth, a.LineHeight
}
