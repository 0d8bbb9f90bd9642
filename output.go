package idstamp

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/gogpu/idstamp/composite"
	"github.com/gogpu/idstamp/field"
	"github.com/gogpu/idstamp/internal/imageio"
)

// Format is an output encoding.
type Format = imageio.Format

// Output formats.
const (
	FormatPNG  = imageio.PNG
	FormatJPEG = imageio.JPEG
)

// ParseFormat parses "png", "jpg" or "jpeg".
func ParseFormat(s string) (Format, error) { return imageio.ParseFormat(s) }

// Overlay colours and stroke width.
var (
	OverlayFieldColor     = color.NRGBA{R: 0xff, A: 0xff}
	OverlayTokenColor     = color.NRGBA{R: 0xff, A: 0xff}
	OverlaySeparatorColor = color.NRGBA{B: 0xff, A: 0xff}
)

// OverlayWidth is the stroke width of reference rectangles.
const OverlayWidth = 2

// Flatten composites img onto an opaque background. A nil bg means white.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	if bg == nil {
		bg = color.White
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// Encode flattens img onto white and writes it to w. quality applies to
// JPEG only.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	return imageio.Encode(w, Flatten(img, nil), f, quality)
}

// Save flattens img and writes it to path atomically, choosing the format
// from the extension.
func Save(path string, img image.Image, quality int) error {
	f, err := imageio.FormatFromPath(path)
	if err != nil {
		return err
	}
	return imageio.Save(path, Flatten(img, nil), f, quality)
}

// Overlay outlines the nominal rectangle of every field in specs. Date
// fields also get their token boxes, separators in a second colour. It is a
// visual aid and does not affect placement.
func Overlay(dst *image.NRGBA, specs field.Table) {
	for _, id := range specs.Ordered() {
		spec, _ := specs.Get(id)
		strokeRect(dst, spec.Rect.Bounds(), OverlayFieldColor, OverlayWidth)

		if spec.Kind != field.KindDate {
			continue
		}
		places, err := composite.Layout(field.Resolve(spec), "00/---/---/0000", spec.SubContainers)
		if err != nil {
			continue
		}
		for _, p := range places {
			col := OverlayTokenColor
			if p.Separator() {
				col = OverlaySeparatorColor
			}
			strokeRect(dst, p.Box, col, OverlayWidth)
		}
	}
}

// strokeRect draws the inner border of r, width pixels thick.
func strokeRect(dst draw.Image, r image.Rectangle, c color.Color, width int) {
	if r.Empty() || width <= 0 {
		return
	}
	src := image.NewUniform(c)
	w := min(width, r.Dx(), r.Dy())
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w),
		image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+w, r.Min.X+w, r.Max.Y-w),
		image.Rect(r.Max.X-w, r.Min.Y+w, r.Max.X, r.Max.Y-w),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Over)
	}
}
