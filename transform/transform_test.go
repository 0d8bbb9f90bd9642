package transform

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var ink = color.NRGBA{A: 255}

func size(img image.Image) image.Point { return img.Bounds().Size() }

func TestStretchToFit(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		fitWidth int
		want     image.Point
		same     bool
	}{
		{"wider shrinks width only", 300, 40, 200, image.Pt(200, 40), false},
		{"narrower untouched", 150, 40, 200, image.Pt(150, 40), true},
		{"equal untouched", 200, 40, 200, image.Pt(200, 40), true},
		{"zero fit untouched", 300, 40, 0, image.Pt(300, 40), true},
		{"negative fit untouched", 300, 40, -5, image.Pt(300, 40), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := solid(tt.w, tt.h, ink)
			got := StretchToFit(src, tt.fitWidth)
			if size(got) != tt.want {
				t.Errorf("size = %v, want %v", size(got), tt.want)
			}
			if (got == src) != tt.same {
				t.Errorf("returned source = %v, want %v", got == src, tt.same)
			}
		})
	}
}

func TestStretchToFitIdempotent(t *testing.T) {
	src := solid(310, 30, ink)
	once := StretchToFit(src, 250)
	twice := StretchToFit(once, 250)

	if twice != once {
		t.Error("second StretchToFit resampled again")
	}
}

func padded(inkW, h, pad int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, inkW+pad, h+pad))
	for y := pad / 2; y < pad/2+h; y++ {
		for x := pad / 2; x < pad/2+inkW; x++ {
			img.SetNRGBA(x, y, ink)
		}
	}
	return img
}

func TestStretchToFitMeasuresInk(t *testing.T) {
	tests := []struct {
		name     string
		fitWidth int
		same     bool
		wantInk  int
		slack    int
	}{
		{"ink equals fit width", 86, true, 86, 0},
		{"ink narrower than fit width", 90, true, 86, 0},
		// Lanczos ringing may leave faint alpha just outside the ink.
		{"ink wider than fit width", 43, false, 43, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := padded(86, 20, 10)
			got := StretchToFit(src, tt.fitWidth)
			if (got == src) != tt.same {
				t.Fatalf("returned source = %v, want %v", got == src, tt.same)
			}
			if got.Bounds().Dy() != src.Bounds().Dy() {
				t.Errorf("height changed to %d", got.Bounds().Dy())
			}
			if w := InkBounds(got).Dx(); w < tt.wantInk-1 || w > tt.wantInk+tt.slack {
				t.Errorf("ink width = %d, want %d", w, tt.wantInk)
			}
		})
	}
}

func TestInkBounds(t *testing.T) {
	if r := InkBounds(image.NewNRGBA(image.Rect(0, 0, 4, 4))); !r.Empty() {
		t.Errorf("transparent image ink = %v, want empty", r)
	}
	if r := InkBounds(padded(6, 3, 4)); r != image.Rect(2, 2, 8, 5) {
		t.Errorf("ink = %v, want (2,2)-(8,5)", r)
	}
}

func TestScale(t *testing.T) {
	src := solid(100, 40, ink)

	if got := Scale(src, 1, 1); got != src {
		t.Error("Scale(1,1) resampled")
	}
	if got := size(Scale(src, 0.5, 2)); got != image.Pt(50, 80) {
		t.Errorf("Scale(0.5,2) size = %v, want (50,80)", got)
	}
	if got := size(Scale(src, 0.001, 1.5)); got != image.Pt(1, 60) {
		t.Errorf("Scale(0.001,1.5) size = %v, want (1,60)", got)
	}
	if got := Scale(src, 0, 2); got != src {
		t.Error("Scale with zero factor resampled")
	}
}

func TestRotateExpand(t *testing.T) {
	src := solid(100, 20, ink)
	// Mark the top-left corner to check the direction of rotation.
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	r90 := RotateExpand(src, 90)
	if size(r90) != image.Pt(20, 100) {
		t.Fatalf("RotateExpand(90) size = %v, want (20,100)", size(r90))
	}
	// Counter-clockwise: the top-left corner moves to the bottom-left.
	if got := r90.NRGBAAt(0, 99); got.R != 255 {
		t.Errorf("marker at (0,99) = %v, want red", got)
	}

	if got := size(RotateExpand(src, -90)); got != image.Pt(20, 100) {
		t.Errorf("RotateExpand(-90) size = %v, want (20,100)", got)
	}
	if got := size(RotateExpand(src, 180)); got != image.Pt(100, 20) {
		t.Errorf("RotateExpand(180) size = %v, want (100,20)", got)
	}

	r0 := RotateExpand(src, 360)
	if r0 == src || size(r0) != size(src) {
		t.Error("RotateExpand(360) should return an equal-sized copy")
	}
}

func TestRotateExpandArbitraryAngleGrows(t *testing.T) {
	src := solid(100, 20, ink)
	got := RotateExpand(src, 45)
	if got.Bounds().Dx() <= 20 || got.Bounds().Dy() <= 20 {
		t.Errorf("RotateExpand(45) size = %v, want expanded", size(got))
	}
	if c := got.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("corner = %v, want transparent", c)
	}
}

func TestFitHeight(t *testing.T) {
	src := solid(30, 200, ink)

	got := FitHeight(src, 98)
	if got.Bounds().Dy() != 100 {
		t.Errorf("height = %d, want 98 + slack = 100", got.Bounds().Dy())
	}
	if got.Bounds().Dx() != 15 {
		t.Errorf("width = %d, want 15", got.Bounds().Dx())
	}

	if FitHeight(src, 0) != src {
		t.Error("FitHeight(0) resampled")
	}
	if FitHeight(src, 198) != src {
		t.Error("FitHeight at exact size resampled")
	}
}

func TestFitInto(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		rect     image.Rectangle
		wantSize image.Point
		wantPt   image.Point
	}{
		{
			name:     "large shrinks to rect",
			w:        400,
			h:        100,
			rect:     image.Rect(100, 50, 300, 110),
			wantSize: image.Pt(200, 50), // min(0.5, 0.6) = 0.5
			wantPt:   image.Pt(100, 51),
		},
		{
			name:     "small capped at fill",
			w:        50,
			h:        10,
			rect:     image.Rect(0, 0, 500, 500),
			wantSize: image.Pt(48, 9),
			wantPt:   image.Pt(226, 245-4),
		},
		{
			name:     "exact width still capped",
			w:        100,
			h:        20,
			rect:     image.Rect(0, 0, 100, 200),
			wantSize: image.Pt(96, 19),
			wantPt:   image.Pt(2, 90-4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := solid(tt.w, tt.h, ink)
			out, pt := FitInto(src, tt.rect)
			if size(out) != tt.wantSize {
				t.Errorf("size = %v, want %v", size(out), tt.wantSize)
			}
			if pt != tt.wantPt {
				t.Errorf("pt = %v, want %v", pt, tt.wantPt)
			}
		})
	}
}

func TestFitIntoClampsTopLeft(t *testing.T) {
	// A degenerate rect pins the result to its corner, minus the nudge.
	src := solid(10, 10, ink)
	_, pt := FitInto(src, image.Rect(20, 30, 20, 30))
	if pt != image.Pt(20, 26) {
		t.Errorf("pt = %v, want (20,26)", pt)
	}
}

func TestPaste(t *testing.T) {
	dst := solid(10, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(1, 1, color.NRGBA{A: 255})

	Paste(dst, src, image.Pt(3, 3))

	if got := dst.NRGBAAt(4, 4); got != (color.NRGBA{A: 255}) {
		t.Errorf("pasted pixel = %v, want black", got)
	}
	if got := dst.NRGBAAt(3, 3); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("transparent source pixel changed dst to %v", got)
	}
}

func TestPasteClipsOutside(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	Paste(dst, solid(4, 4, ink), image.Pt(-2, 3))

	if got := dst.NRGBAAt(0, 4); got.A != 255 {
		t.Errorf("(0,4) = %v, want ink", got)
	}
	if got := dst.NRGBAAt(2, 4); got.A != 0 {
		t.Errorf("(2,4) = %v, want untouched", got)
	}
}

func TestVertical(t *testing.T) {
	src := solid(120, 30, ink)
	got := Vertical(src, 90, 1, 1, 58)

	if got.Bounds().Dy() != 60 {
		t.Errorf("height = %d, want 60", got.Bounds().Dy())
	}
	if got.Bounds().Dx() != 15 {
		t.Errorf("width = %d, want 15", got.Bounds().Dx())
	}
}
