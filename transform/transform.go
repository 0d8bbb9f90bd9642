package transform

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

const (
	// SignatureFillCap is the largest share of its rectangle a signature
	// may fill.
	SignatureFillCap = 0.96
	// SignatureScaleTolerance skips resampling when the fit scale is this
	// close to 1.
	SignatureScaleTolerance = 0.02
	// SignatureNudgeY moves the centred signature up for optical centring.
	SignatureNudgeY = 4
	// VerticalFitSlack is added to the slot height when fitting rotated text,
	// so the glyphs touch both inner edges of narrow vertical slots.
	VerticalFitSlack = 2
	// VerticalPadding is added to both axes of the horizontal surface before
	// rotation.
	VerticalPadding = 5
	// VerticalCharPadding is added to both axes of each character box in the
	// letter-spaced vertical variant.
	VerticalCharPadding = 10
)

// StretchToFit rescales only the width of src so that its ink, the
// bounding box of non-transparent pixels, becomes fitWidth wide. Transparent
// padding around the ink scales with it. The height is never changed. It
// returns src unchanged when the ink is at most fitWidth wide, when src has
// no ink, or when fitWidth <= 0.
func StretchToFit(src *image.NRGBA, fitWidth int) *image.NRGBA {
	w := InkBounds(src).Dx()
	if fitWidth <= 0 || w == 0 || w <= fitWidth {
		return src
	}
	b := src.Bounds()
	nw := max(1, int(math.Round(float64(b.Dx())*float64(fitWidth)/float64(w))))
	return imaging.Resize(src, nw, b.Dy(), imaging.Lanczos)
}

// InkBounds returns the bounding box of the pixels of src with non-zero
// alpha. It is empty when src is fully transparent.
func InkBounds(src *image.NRGBA) image.Rectangle {
	var r image.Rectangle
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4+3] != 0 {
				r = r.Union(image.Rect(b.Min.X+x, y, b.Min.X+x+1, y+1))
			}
		}
	}
	return r
}

// Scale resizes each axis of src by its own factor. Dimensions are
// truncated and never drop below one pixel. It returns src unchanged when
// both factors are 1 or either is non-positive.
func Scale(src *image.NRGBA, sx, sy float64) *image.NRGBA {
	if (sx == 1 && sy == 1) || sx <= 0 || sy <= 0 {
		return src
	}
	b := src.Bounds()
	w := max(1, int(float64(b.Dx())*sx))
	h := max(1, int(float64(b.Dy())*sy))
	return imaging.Resize(src, w, h, imaging.Lanczos)
}

// RotateExpand rotates src counter-clockwise by degrees. The result grows to
// hold the whole rotated image and new pixels are transparent.
func RotateExpand(src *image.NRGBA, degrees float64) *image.NRGBA {
	switch math.Mod(math.Mod(degrees, 360)+360, 360) {
	case 0:
		return imaging.Clone(src)
	case 90:
		return imaging.Rotate90(src)
	case 180:
		return imaging.Rotate180(src)
	case 270:
		return imaging.Rotate270(src)
	}
	return imaging.Rotate(src, degrees, color.Transparent)
}

// FitHeight rescales src uniformly so its height becomes
// height + VerticalFitSlack. It returns src unchanged when height <= 0.
func FitHeight(src *image.NRGBA, height int) *image.NRGBA {
	b := src.Bounds()
	if height <= 0 || b.Dy() == 0 {
		return src
	}
	target := height + VerticalFitSlack
	if target == b.Dy() {
		return src
	}
	s := float64(target) / float64(b.Dy())
	w := max(1, int(math.Round(float64(b.Dx())*s)))
	return imaging.Resize(src, w, target, imaging.Lanczos)
}

// FitInto scales src to fit inside rect and returns the scaled image and the
// point to paste it at.
//
// The scale is min(rect.Dx()/w, rect.Dy()/h) capped at SignatureFillCap and
// applied only when it differs from 1 by more than SignatureScaleTolerance.
// The result is centred in rect, kept from crossing rect's top-left corner,
// then moved up by SignatureNudgeY.
func FitInto(src *image.NRGBA, rect image.Rectangle) (*image.NRGBA, image.Point) {
	b := src.Bounds()
	sw, sh := max(1, b.Dx()), max(1, b.Dy())

	scale := math.Min(float64(rect.Dx())/float64(sw), float64(rect.Dy())/float64(sh))
	scale = math.Min(scale, SignatureFillCap)

	out := src
	if math.Abs(scale-1) > SignatureScaleTolerance {
		w := max(1, int(float64(sw)*scale))
		h := max(1, int(float64(sh)*scale))
		out = imaging.Resize(src, w, h, imaging.Lanczos)
	}

	ob := out.Bounds()
	x := rect.Min.X + floorDiv(rect.Dx()-ob.Dx(), 2)
	y := rect.Min.Y + floorDiv(rect.Dy()-ob.Dy(), 2)
	x = max(x, rect.Min.X)
	y = max(y, rect.Min.Y)
	y -= SignatureNudgeY
	return out, image.Pt(x, y)
}

// Resize stretches src to exactly w x h pixels.
func Resize(src image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(src, w, h, imaging.Lanczos)
}

// Paste composites src over dst with its top-left corner at pt.
// Parts of src outside dst are clipped.
func Paste(dst *image.NRGBA, src image.Image, pt image.Point) {
	sb := src.Bounds()
	xdraw.Copy(dst, pt, src, sb, xdraw.Over, nil)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Vertical prepares a horizontally rendered surface for a vertical slot:
// scale each axis, rotate with expansion, then fit the rotated height to
// height (skipped when height <= 0).
func Vertical(src *image.NRGBA, degrees, sx, sy float64, height int) *image.NRGBA {
	out := Scale(src, sx, sy)
	out = RotateExpand(out, degrees)
	return FitHeight(out, height)
}
