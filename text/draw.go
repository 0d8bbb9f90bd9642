package text

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/idstamp/internal/filter"
)

// Draw renders s onto dst with its top-left ascender anchor at (x, y).
func Draw(dst draw.Image, x, y int, s string, face *Face, col color.Color) {
	if s == "" || face == nil {
		return
	}
	face.with(func(xf font.Face) {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(col),
			Face: xf,
			Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.ascent},
		}
		d.DrawString(s)
	})
}

// BoldOffsets returns the redraw offsets used to simulate bold at the given
// stroke thickness. The thickness is truncated to an integer t; t <= 0 yields
// the single offset (0, 0). Otherwise both axes range over
// floor(-t/2) .. floor(t/2), so t = 2 gives nine offsets.
func BoldOffsets(thickness float64) []image.Point {
	t := int(thickness)
	if t <= 0 {
		return []image.Point{{}}
	}
	lo, hi := floorDiv(-t, 2), floorDiv(t, 2)
	out := make([]image.Point, 0, (hi-lo+1)*(hi-lo+1))
	for i := lo; i <= hi; i++ {
		for j := lo; j <= hi; j++ {
			out = append(out, image.Pt(i, j))
		}
	}
	return out
}

// DrawBold renders s once per BoldOffsets(thickness) offset.
func DrawBold(dst draw.Image, x, y int, s string, face *Face, col color.Color, thickness float64) {
	for _, off := range BoldOffsets(thickness) {
		Draw(dst, x+off.X, y+off.Y, s, face, col)
	}
}

// Padding is the transparent margin around a blurred glyph surface.
type Padding struct {
	Normal int
	Hyphen int
}

// DefaultPadding is the blur padding used when SpacingOptions leaves it zero.
var DefaultPadding = Padding{Normal: 5, Hyphen: 8}

// SpacingOptions configures DrawSpaced.
type SpacingOptions struct {
	// Thickness is the faux-bold stroke thickness for every character.
	Thickness float64
	// LetterSpacing is added after every character's width.
	LetterSpacing int
	// BlurRadius blurs each character when positive.
	BlurRadius float64
	// Padding surrounds each blurred character surface.
	Padding Padding
	// Exclude lists characters drawn without blur.
	Exclude string
}

// DrawSpaced renders s one character at a time. Each character advances the
// cursor by its ink width (or its advance when it has no ink) plus
// LetterSpacing. Characters outside Exclude are blurred when BlurRadius > 0.
func DrawSpaced(dst draw.Image, x, y int, s string, face *Face, col color.Color, opts SpacingOptions) {
	if face == nil {
		return
	}
	pad := opts.Padding
	if pad == (Padding{}) {
		pad = DefaultPadding
	}

	cx := x
	for _, r := range s {
		ch := string(r)
		w, _ := face.Measure(ch)

		if opts.BlurRadius > 0 && !strings.ContainsRune(opts.Exclude, r) {
			p := pad.Normal
			if r == '-' {
				p = pad.Hyphen
			}
			surf := RenderSurface(face, ch, col, opts.Thickness, 2*p, image.Pt(p, p))
			blurred := filter.GaussianBlur(surf, opts.BlurRadius)
			at := image.Pt(cx-p, y-p)
			draw.Draw(dst, blurred.Bounds().Add(at), blurred, image.Point{}, draw.Over)
		} else {
			DrawBold(dst, cx, y, ch, face, col, opts.Thickness)
		}
		cx += w + opts.LetterSpacing
	}
}

// RenderSurface draws s in faux-bold onto a new transparent surface with its
// anchor at at. The surface covers the ink extent of s plus extra pixels on
// each axis; when s has no ink it covers the advance and face height.
func RenderSurface(face *Face, s string, col color.Color, thickness float64, extra int, at image.Point) *image.NRGBA {
	w, h := surfaceExtent(face, s)
	surf := image.NewNRGBA(image.Rect(0, 0, max(w+extra, 1), max(h+extra, 1)))
	DrawBold(surf, at.X, at.Y, s, face, col, thickness)
	return surf
}

func surfaceExtent(face *Face, s string) (w, h int) {
	b := face.Bounds(s)
	if b.Empty() {
		return face.Advance(s), face.Metrics().Height()
	}
	return b.Max.X, b.Max.Y
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
