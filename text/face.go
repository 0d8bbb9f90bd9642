package text

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Metrics holds vertical font metrics in pixels.
type Metrics struct {
	// Ascent is the distance from the top anchor to the baseline.
	Ascent int
	// Descent is the distance from the baseline to the lowest descender.
	Descent int
	// LineHeight is the recommended baseline-to-baseline distance.
	LineHeight int
}

// Height returns Ascent + Descent.
func (m Metrics) Height() int { return m.Ascent + m.Descent }

// Face is an immutable font handle at a fixed pixel size.
// It is the unit FontCache stores and GlyphRenderer consumes.
//
// Face is safe for concurrent use.
type Face struct {
	family  string
	px      int
	source  *FontSource
	metrics Metrics
	ascent  fixed.Int26_6

	pool sync.Pool
}

func newFace(src *FontSource, family string, px int) (*Face, error) {
	if px <= 0 {
		return nil, fmt.Errorf("%w: %d px", ErrInvalidSize, px)
	}

	f := &Face{family: family, px: px, source: src}

	// Build one face eagerly so option errors surface here instead of
	// inside the pool.
	xf, err := f.newXFace()
	if err != nil {
		return nil, err
	}
	m := xf.Metrics()
	f.ascent = m.Ascent
	f.metrics = Metrics{
		Ascent:     m.Ascent.Ceil(),
		Descent:    m.Descent.Ceil(),
		LineHeight: m.Height.Ceil(),
	}
	f.pool.New = func() any {
		xf, err := f.newXFace()
		if err != nil {
			// Options were validated above; opentype.NewFace only fails on
			// invalid options.
			panic(err)
		}
		return xf
	}
	f.pool.Put(xf)
	return f, nil
}

func (f *Face) newXFace() (font.Face, error) {
	xf, err := opentype.NewFace(f.source.font, &opentype.FaceOptions{
		Size:    float64(f.px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: new face %s@%dpx: %w", f.family, f.px, err)
	}
	return xf, nil
}

// with runs fn with a face taken from the pool.
func (f *Face) with(fn func(font.Face)) {
	xf := f.pool.Get().(font.Face)
	defer f.pool.Put(xf)
	fn(xf)
}

// Family returns the family name the face was requested under.
func (f *Face) Family() string { return f.family }

// Size returns the pixel size of the face.
func (f *Face) Size() int { return f.px }

// Source returns the parsed font the face was created from.
func (f *Face) Source() *FontSource { return f.source }

// Metrics returns the vertical metrics of the face.
func (f *Face) Metrics() Metrics { return f.metrics }

// Bounds returns the ink bounding box of s drawn at the origin, relative to
// the top-left ascender anchor. The box is empty for strings with no ink,
// such as spaces.
func (f *Face) Bounds(s string) image.Rectangle {
	if s == "" {
		return image.Rectangle{}
	}
	var b fixed.Rectangle26_6
	f.with(func(xf font.Face) {
		b, _ = font.BoundString(xf, s)
	})
	r := image.Rect(
		b.Min.X.Floor(), (b.Min.Y + f.ascent).Floor(),
		b.Max.X.Ceil(), (b.Max.Y + f.ascent).Ceil(),
	)
	if r.Empty() {
		return image.Rectangle{}
	}
	return r
}

// Advance returns the horizontal advance of s in pixels.
func (f *Face) Advance(s string) int {
	var adv fixed.Int26_6
	f.with(func(xf font.Face) {
		adv = font.MeasureString(xf, s)
	})
	return adv.Ceil()
}

// Measure returns the ink width of s and the face height. When s has no
// ink the width is its advance.
func (f *Face) Measure(s string) (width, height int) {
	b := f.Bounds(s)
	width = b.Dx()
	if width == 0 {
		width = f.Advance(s)
	}
	return width, f.metrics.Height()
}
