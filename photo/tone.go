package photo

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/idstamp/internal/filter"
)

// Tone parameters.
const (
	// ToneLevel darkens the greyscale luma.
	ToneLevel = 217.0 / 255.0
	// FadeStrength is the maximum alpha reduction at the corners.
	FadeStrength = 0.3
	// ToneBlur is the sigma of the final softening blur.
	ToneBlur = 0.5
	// FeatherBlur is the sigma applied to the segmentation edge.
	FeatherBlur = 2.0
)

// Feather softens the alpha edge of a segmented portrait: a 3x3 erosion
// pulls the mask inside the subject, then a Gaussian blur smooths it.
// Colour channels are left as they are.
func Feather(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(out.Pix, normalize(img).Pix)

	mask := image.NewNRGBA(out.Bounds())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := erodedAlpha(out, x, y)
			i := mask.PixOffset(x, y)
			mask.Pix[i+0], mask.Pix[i+1], mask.Pix[i+2], mask.Pix[i+3] = 255, 255, 255, a
		}
	}
	mask = filter.GaussianBlur(mask, FeatherBlur)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[out.PixOffset(x, y)+3] = mask.Pix[mask.PixOffset(x, y)+3]
		}
	}
	return out
}

func erodedAlpha(img *image.NRGBA, x, y int) uint8 {
	b := img.Bounds()
	m := uint8(255)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			px, py := x+dx, y+dy
			if px < b.Min.X || py < b.Min.Y || px >= b.Max.X || py >= b.Max.Y {
				continue
			}
			m = min(m, img.Pix[img.PixOffset(px, py)+3])
		}
	}
	return m
}

// Tone converts visible pixels to darkened grey, fades alpha radially
// from the centre by up to FadeStrength, then blurs lightly.
func Tone(img *image.NRGBA) *image.NRGBA {
	src := normalize(img)
	grey := filter.Grayscale(ToneLevel).Apply(src)

	w, h := grey.Bounds().Dx(), grey.Bounds().Dy()
	cx, cy := float64(w/2), float64(h/2)
	maxd := math.Hypot(cx, cy)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := grey.PixOffset(x, y)
			a := grey.Pix[i+3]
			if a == 0 {
				copy(grey.Pix[i:i+3], src.Pix[i:i+3])
				continue
			}
			if maxd == 0 {
				continue
			}
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			fade := int(255 * (d / maxd * FadeStrength))
			grey.Pix[i+3] = uint8(max(0, int(a)-fade))
		}
	}
	return filter.GaussianBlur(grey, ToneBlur)
}

// Frame colours.
var (
	FrameOuter = color.NRGBA{R: 240, G: 240, B: 240, A: 100}
	FrameInner = color.NRGBA{R: 250, G: 250, B: 250, A: 60}
)

// Frame paints a 2 px outer and a 1 px inner border onto img in place.
// Border pixels are replaced, not blended.
func Frame(img *image.NRGBA) {
	b := img.Bounds()
	border(img, b, 2, FrameOuter)
	border(img, b.Inset(2), 1, FrameInner)
}

func border(img *image.NRGBA, r image.Rectangle, width int, c color.NRGBA) {
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if x < r.Min.X+width || x >= r.Max.X-width || y < r.Min.Y+width || y >= r.Max.Y-width {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

// normalize returns img with its bounds at the origin and a tight stride,
// sharing pixels when img already has both.
func normalize(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	if b.Min == (image.Point{}) && img.Stride == b.Dx()*4 {
		return img
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()*4], img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return out
}
