package field

import (
	"image"
	"strings"
)

// Alignment is the declared anchor of a field.
//
// All alignments currently resolve to the same anchor (see Resolve).
type Alignment int

const (
	// AlignUnspecified is the zero value and behaves like AlignTopLeft.
	AlignUnspecified Alignment = iota
	// AlignTopLeft anchors at the rectangle's top-left corner.
	AlignTopLeft
	// AlignBottomCenter is used by vertical passport numbers.
	AlignBottomCenter
	// AlignCenter is used by a few legacy layouts.
	AlignCenter
)

// String returns the configuration name of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignTopLeft:
		return "top_left"
	case AlignBottomCenter:
		return "bottom_center"
	case AlignCenter:
		return "center"
	default:
		return "unspecified"
	}
}

// ParseAlignment converts a configuration name to an Alignment.
// Unknown names are reported with ok == false and map to AlignUnspecified.
func ParseAlignment(s string) (a Alignment, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AlignUnspecified, true
	case "top_left", "top-left":
		return AlignTopLeft, true
	case "bottom_center", "bottom-center":
		return AlignBottomCenter, true
	case "center":
		return AlignCenter, true
	default:
		return AlignUnspecified, false
	}
}

// Resolve returns the paste anchor of a field: base position plus offset.
//
// The result depends only on Rect.X, Rect.Y and Offset, never on the
// rectangle size, the alignment or the rendered content.
func Resolve(s Spec) image.Point {
	return image.Pt(s.Rect.X+s.Offset.DX, s.Rect.Y+s.Offset.DY)
}

// ResolveSub returns the text anchor of a sub-container relative to the
// parent origin.
func ResolveSub(origin image.Point, sc SubContainer) image.Point {
	return image.Pt(
		origin.X+sc.Rect.X+sc.TextOffset.DX,
		origin.Y+sc.Rect.Y+sc.TextOffset.DY,
	)
}
