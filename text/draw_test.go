package text

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var black = color.NRGBA{A: 255}

func inkBounds(img *image.NRGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A == 0 {
				continue
			}
			r = r.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return r
}

func TestBoldOffsets(t *testing.T) {
	grid := func(lo, hi int) []image.Point {
		var out []image.Point
		for i := lo; i <= hi; i++ {
			for j := lo; j <= hi; j++ {
				out = append(out, image.Pt(i, j))
			}
		}
		return out
	}

	tests := []struct {
		name      string
		thickness float64
		want      []image.Point
	}{
		{"zero", 0, []image.Point{{}}},
		{"fraction truncates to zero", 0.7, []image.Point{{}}},
		{"negative", -2, []image.Point{{}}},
		{"one", 1, grid(-1, 0)},
		{"two", 2, grid(-1, 1)},
		{"two and a half", 2.5, grid(-1, 1)},
		{"three", 3, grid(-2, 1)},
		{"four", 4, grid(-2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, BoldOffsets(tt.thickness)); diff != "" {
				t.Errorf("BoldOffsets(%v) mismatch (-want +got):\n%s", tt.thickness, diff)
			}
		})
	}
}

func TestBoldOffsetsTwoIsNineDraws(t *testing.T) {
	if n := len(BoldOffsets(2)); n != 9 {
		t.Errorf("len(BoldOffsets(2)) = %d, want 9", n)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{-1, 2, -1},
		{-2, 2, -1},
		{-3, 2, -2},
		{3, 2, 1},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDrawTopLeftAnchor(t *testing.T) {
	f := testFace(t, 32)
	dst := image.NewNRGBA(image.Rect(0, 0, 200, 80))

	Draw(dst, 20, 10, "H", f, black)

	ink := inkBounds(dst)
	want := f.Bounds("H").Add(image.Pt(20, 10))
	if ink.Empty() {
		t.Fatal("nothing drawn")
	}
	if abs(ink.Min.X-want.Min.X) > 1 || abs(ink.Min.Y-want.Min.Y) > 1 ||
		abs(ink.Max.X-want.Max.X) > 1 || abs(ink.Max.Y-want.Max.Y) > 1 {
		t.Errorf("ink = %v, want about %v", ink, want)
	}
}

func TestDrawEmptyAndNilFace(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	Draw(dst, 0, 0, "", testFace(t, 12), black)
	Draw(dst, 0, 0, "A", nil, black)
	if !inkBounds(dst).Empty() {
		t.Error("expected no ink")
	}
}

func TestDrawBoldWidensInk(t *testing.T) {
	f := testFace(t, 32)
	plain := image.NewNRGBA(image.Rect(0, 0, 200, 80))
	bold := image.NewNRGBA(image.Rect(0, 0, 200, 80))

	Draw(plain, 20, 10, "I", f, black)
	DrawBold(bold, 20, 10, "I", f, black, 2)

	p, b := inkBounds(plain), inkBounds(bold)
	if b.Dx() != p.Dx()+2 {
		t.Errorf("bold width = %d, want plain width %d + 2", b.Dx(), p.Dx())
	}
	if b.Min.X != p.Min.X-1 {
		t.Errorf("bold Min.X = %d, want %d", b.Min.X, p.Min.X-1)
	}
}

func TestDrawBoldZeroMatchesDraw(t *testing.T) {
	f := testFace(t, 20)
	a := image.NewNRGBA(image.Rect(0, 0, 100, 40))
	b := image.NewNRGBA(image.Rect(0, 0, 100, 40))

	Draw(a, 3, 4, "Ag", f, black)
	DrawBold(b, 3, 4, "Ag", f, black, 0.5)

	if diff := cmp.Diff(a.Pix, b.Pix); diff != "" {
		t.Error("DrawBold with thickness < 1 differs from Draw")
	}
}

func TestDrawSpacedAdvancesByInkWidth(t *testing.T) {
	f := testFace(t, 24)
	dst := image.NewNRGBA(image.Rect(0, 0, 300, 60))

	DrawSpaced(dst, 10, 5, "II", f, black, SpacingOptions{LetterSpacing: 20})

	// The second I starts one ink width plus the spacing after the first.
	single := image.NewNRGBA(image.Rect(0, 0, 300, 60))
	Draw(single, 10, 5, "I", f, black)
	first := inkBounds(single)

	w, _ := f.Measure("I")
	secondStart := image.NewNRGBA(image.Rect(0, 0, 300, 60))
	Draw(secondStart, 10+w+20, 5, "I", f, black)
	want := first.Union(inkBounds(secondStart))

	if got := inkBounds(dst); got != want {
		t.Errorf("ink = %v, want %v", got, want)
	}
}

func TestDrawSpacedSpaceUsesAdvance(t *testing.T) {
	f := testFace(t, 24)
	a := image.NewNRGBA(image.Rect(0, 0, 300, 60))
	b := image.NewNRGBA(image.Rect(0, 0, 300, 60))

	DrawSpaced(a, 0, 0, "A B", f, black, SpacingOptions{})
	wa, _ := f.Measure("A")
	Draw(b, wa+f.Advance(" "), 0, "B", f, black)

	if inkBounds(a).Max.X != inkBounds(b).Max.X {
		t.Errorf("ink right edge = %d, want %d", inkBounds(a).Max.X, inkBounds(b).Max.X)
	}
}

func TestDrawSpacedBlurSoftensEdges(t *testing.T) {
	f := testFace(t, 32)
	sharp := image.NewNRGBA(image.Rect(0, 0, 200, 80))
	soft := image.NewNRGBA(image.Rect(0, 0, 200, 80))

	DrawSpaced(sharp, 20, 20, "I", f, black, SpacingOptions{})
	DrawSpaced(soft, 20, 20, "I", f, black, SpacingOptions{BlurRadius: 1.5})

	s, b := inkBounds(sharp), inkBounds(soft)
	if !s.In(b) || s == b {
		t.Errorf("blurred ink %v should strictly contain sharp ink %v", b, s)
	}
}

func TestDrawSpacedBlurExcludesHyphen(t *testing.T) {
	f := testFace(t, 32)
	plain := image.NewNRGBA(image.Rect(0, 0, 200, 80))
	blurred := image.NewNRGBA(image.Rect(0, 0, 200, 80))

	DrawSpaced(plain, 20, 20, "-", f, black, SpacingOptions{})
	DrawSpaced(blurred, 20, 20, "-", f, black, SpacingOptions{BlurRadius: 2, Exclude: "-"})

	if diff := cmp.Diff(plain.Pix, blurred.Pix); diff != "" {
		t.Error("excluded hyphen was blurred")
	}
}

func TestRenderSurface(t *testing.T) {
	f := testFace(t, 30)
	ink := f.Bounds("AB")

	surf := RenderSurface(f, "AB", black, 0, 10, image.Pt(5, 5))

	if surf.Bounds().Dx() != ink.Max.X+10 || surf.Bounds().Dy() != ink.Max.Y+10 {
		t.Errorf("surface = %v, want %dx%d", surf.Bounds(), ink.Max.X+10, ink.Max.Y+10)
	}
	got := inkBounds(surf)
	if got.Min.X < 5 || got.Max.X > surf.Bounds().Dx() || got.Max.Y > surf.Bounds().Dy() {
		t.Errorf("ink %v clipped or misplaced in %v", got, surf.Bounds())
	}
}

func TestRenderSurfaceNoInk(t *testing.T) {
	f := testFace(t, 30)
	surf := RenderSurface(f, " ", black, 0, 0, image.Point{})
	if surf.Bounds().Dx() != f.Advance(" ") || surf.Bounds().Dy() != f.Metrics().Height() {
		t.Errorf("surface = %v, want advance x height", surf.Bounds())
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
