package idstamp

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/gogpu/idstamp/field"
	"github.com/gogpu/idstamp/internal/imageio"
)

func TestFlatten(t *testing.T) {
	img := image.NewNRGBA(image.Rect(3, 3, 5, 5))
	img.SetNRGBA(4, 4, color.NRGBA{A: 0xff})

	out := Flatten(img, nil)
	if out.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := out.NRGBAAt(0, 0); got != white {
		t.Errorf("transparent pixel = %v, want white", got)
	}
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{A: 0xff}) {
		t.Errorf("opaque pixel = %v, want black", got)
	}
	if got := Flatten(img, color.Black).NRGBAAt(0, 0); got != (color.NRGBA{A: 0xff}) {
		t.Errorf("black background = %v", got)
	}
}

func TestOverlay(t *testing.T) {
	img := whiteTemplate(300, 60).Canvas()
	specs := field.Table{
		"name":       {Rect: field.Rect{X: 10, Y: 10, Width: 50, Height: 20}},
		"birth_date": {Kind: field.KindDate, Rect: field.Rect{X: 100, Y: 30}},
	}
	Overlay(img, specs)

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{10, 10, red},
		{11, 29, red},
		{30, 15, white},
		{59, 20, red},
		{100, 30, red},
		{130, 31, OverlaySeparatorColor},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSaveAndEncode(t *testing.T) {
	img := whiteTemplate(8, 8).Canvas()
	path := filepath.Join(t.TempDir(), "doc.jpg")
	if err := Save(path, img, 90); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := imageio.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := Save(filepath.Join(t.TempDir(), "doc.gif"), img, 0); err == nil {
		t.Error("Save accepted an unsupported extension")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG, 0); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Encode wrote nothing")
	}
}

func TestValue(t *testing.T) {
	if !Image(nil).IsZero() {
		t.Error("Image(nil) is not zero")
	}
	v := Text("VEN")
	if v.Kind() != ValueText || v.String() != "VEN" || v.Image() != nil {
		t.Errorf("Text value = %+v", v)
	}
}
