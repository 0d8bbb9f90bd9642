package field

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSpecWithDefaults(t *testing.T) {
	s := Spec{Rect: Rect{Width: 240}}.WithDefaults()

	if s.ScaleX != 1 || s.ScaleY != 1 {
		t.Errorf("scale = (%v, %v), want (1, 1)", s.ScaleX, s.ScaleY)
	}
	if s.FontSizePt != DefaultFontSizePt {
		t.Errorf("FontSizePt = %v, want %v", s.FontSizePt, DefaultFontSizePt)
	}
	if s.StretchPadding != 10 {
		t.Errorf("StretchPadding = %d, want 10", s.StretchPadding)
	}
	if s.BlurPadding != (BlurPadding{Normal: 5, Hyphen: 8}) {
		t.Errorf("BlurPadding = %+v, want {5 8}", s.BlurPadding)
	}
	if s.FitWidth != 240 {
		t.Errorf("FitWidth = %d, want rect width 240", s.FitWidth)
	}
	if s.Color != (color.NRGBA{A: 255}) {
		t.Errorf("Color = %v, want opaque black", s.Color)
	}
	if s.Scaled() {
		t.Error("Scaled() = true for default scale")
	}
}

func TestSpecWithDefaultsKeepsValues(t *testing.T) {
	in := Spec{ScaleX: 0.5, FitWidth: 90, FontSizePt: 9, StretchPadding: 4}
	s := in.WithDefaults()

	if s.ScaleX != 0.5 || s.ScaleY != 1 || s.FitWidth != 90 || s.FontSizePt != 9 || s.StretchPadding != 4 {
		t.Errorf("WithDefaults overwrote explicit values: %+v", s)
	}
	if !s.Scaled() {
		t.Error("Scaled() = false for ScaleX 0.5")
	}
}

func TestTableGet(t *testing.T) {
	tbl := Table{"apellidos": {Font: "Arial"}}

	s, ok := tbl.Get("apellidos")
	if !ok {
		t.Fatal("Get(apellidos) not found")
	}
	if s.ID != "apellidos" {
		t.Errorf("ID = %q, want apellidos", s.ID)
	}
	if s.ScaleX != 1 {
		t.Errorf("defaults not applied: ScaleX = %v", s.ScaleX)
	}
	if _, ok := tbl.Get("missing"); ok {
		t.Error("Get(missing) found")
	}
}

func TestTableOrdered(t *testing.T) {
	tbl := Table{
		"mrz2":      {Order: 90},
		"mrz1":      {Order: 90},
		"foto":      {Order: 1},
		"apellidos": {Order: 10},
	}
	want := []string{"foto", "apellidos", "mrz1", "mrz2"}
	if diff := cmp.Diff(want, tbl.Ordered()); diff != "" {
		t.Errorf("Ordered() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindText, KindDate, KindSignature, KindPhoto, KindBarcode, KindMRZ} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = (%v, %v), want (%v, true)", k.String(), got, ok, k)
		}
	}
	if k, ok := ParseKind(""); !ok || k != KindText {
		t.Errorf("ParseKind(\"\") = (%v, %v), want (text, true)", k, ok)
	}
	if _, ok := ParseKind("hologram"); ok {
		t.Error("ParseKind(hologram) ok")
	}
}
