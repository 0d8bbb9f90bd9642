package field

import (
	"image"
	"image/color"
	"sort"
)

// Kind selects the renderer the compositor uses for a field.
type Kind int

const (
	// KindText renders a text value. Rotation, stretch-to-fit, manual scale,
	// letter spacing and blur are all variants of this kind.
	KindText Kind = iota
	// KindDate renders a composite date "DD/Mes/Mon/YYYY" token by token.
	KindDate
	// KindSignature renders free text with a handwriting font, auto-fitted
	// and centred in the rectangle.
	KindSignature
	// KindPhoto pastes an already processed image value.
	KindPhoto
	// KindBarcode encodes the text value as a barcode image.
	KindBarcode
	// KindMRZ renders one machine-readable zone line.
	KindMRZ
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindSignature:
		return "signature"
	case KindPhoto:
		return "photo"
	case KindBarcode:
		return "barcode"
	case KindMRZ:
		return "mrz"
	default:
		return "unknown"
	}
}

// ParseKind converts a configuration name to a Kind.
// The empty string maps to KindText.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "", "text":
		return KindText, true
	case "date":
		return KindDate, true
	case "signature":
		return KindSignature, true
	case "photo":
		return KindPhoto, true
	case "barcode":
		return KindBarcode, true
	case "mrz":
		return KindMRZ, true
	default:
		return KindText, false
	}
}

// Rect is a reference rectangle in template pixels.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Min returns the top-left corner of the rectangle.
func (r Rect) Min() image.Point { return image.Pt(r.X, r.Y) }

// Bounds returns the rectangle as an image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Offset shifts the paste anchor of a field or sub-container.
type Offset struct {
	DX, DY int
}

// BlurPadding is the transparent margin around a blurred glyph surface.
// Hyphens get a wider margin than other characters.
type BlurPadding struct {
	Normal int
	Hyphen int
}

// Default layout constants. They encode visually tuned values and must not
// change without a visual regression check.
const (
	DefaultBlurPaddingNormal = 5
	DefaultBlurPaddingHyphen = 8
	DefaultStretchPadding    = 10
	DefaultFontSizePt        = 12
	DefaultBlurExclude       = "-"
)

// DefaultBlurPadding returns the blur padding used when a spec leaves it unset.
func DefaultBlurPadding() BlurPadding {
	return BlurPadding{Normal: DefaultBlurPaddingNormal, Hyphen: DefaultBlurPaddingHyphen}
}

// SubContainer is one independently styled token box of a composite field.
// Its rectangle is relative to the parent field origin and is a visual
// reference only; text is placed at Rect.XY + TextOffset.
type SubContainer struct {
	Rect Rect
	// Set marks rectangle attributes given explicitly, so that an explicit
	// zero is kept rather than replaced by the key's default.
	Set           SubAttr
	TextOffset    Offset
	Font          string
	FontSizePt    float64
	Color         color.NRGBA
	BoldThickness float64
	LetterSpacing int
}

// SubAttr is a set of SubContainer rectangle attributes.
type SubAttr uint8

const (
	SubX SubAttr = 1 << iota
	SubY
	SubWidth
	SubHeight
)

// Has reports whether every attribute of b is in a.
func (a SubAttr) Has(b SubAttr) bool { return a&b == b }

// Sub-container keys of a composite date field, in render order.
const (
	SubDay        = "day"
	SubSep1       = "sep1"
	SubMonthLocal = "month_local"
	SubSep2       = "sep2"
	SubMonthIntl  = "month_intl"
	SubSep3       = "sep3"
	SubYear       = "year"
)

// SubKeys lists the sub-container keys in render order.
var SubKeys = []string{SubDay, SubSep1, SubMonthLocal, SubSep2, SubMonthIntl, SubSep3, SubYear}

// Spec is the declarative layout record of one field.
type Spec struct {
	ID        string
	Kind      Kind
	Order     int
	Rect      Rect
	Offset    Offset
	Alignment Alignment
	Rotation  float64

	Font       string
	FontSizePt float64
	// StrictFont marks the family as a hard requirement: the compositor
	// never substitutes a fallback family for it.
	StrictFont bool
	// Fonts is the ordered whitelist of families tried for signatures.
	Fonts []string
	Color color.NRGBA

	BoldThickness float64
	LetterSpacing int

	ScaleX, ScaleY float64

	StretchToFit   bool
	FitWidth       int
	StretchPadding int

	BlurRadius  float64
	BlurPadding BlurPadding
	BlurExclude string

	// Symbology names the barcode encoding for KindBarcode fields.
	Symbology string

	SubContainers map[string]SubContainer
}

// WithDefaults returns a copy of s with zero-valued attributes replaced by
// their documented defaults.
func (s Spec) WithDefaults() Spec {
	if s.ScaleX == 0 {
		s.ScaleX = 1
	}
	if s.ScaleY == 0 {
		s.ScaleY = 1
	}
	if s.FontSizePt == 0 {
		s.FontSizePt = DefaultFontSizePt
	}
	if s.Color == (color.NRGBA{}) {
		s.Color = color.NRGBA{A: 0xff}
	}
	if s.StretchPadding == 0 {
		s.StretchPadding = DefaultStretchPadding
	}
	if s.BlurPadding == (BlurPadding{}) {
		s.BlurPadding = DefaultBlurPadding()
	}
	if s.FitWidth == 0 {
		s.FitWidth = s.Rect.Width
	}
	return s
}

// Scaled reports whether the spec asks for a manual anisotropic scale.
func (s Spec) Scaled() bool {
	return (s.ScaleX != 0 && s.ScaleX != 1) || (s.ScaleY != 0 && s.ScaleY != 1)
}

// Table maps field ids to their specs. A Table is read-only once built.
type Table map[string]Spec

// Get returns the spec for id with defaults applied.
func (t Table) Get(id string) (Spec, bool) {
	s, ok := t[id]
	if !ok {
		return Spec{}, false
	}
	if s.ID == "" {
		s.ID = id
	}
	return s.WithDefaults(), true
}

// Ordered returns the field ids sorted by Order, then by id.
func (t Table) Ordered() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		oi, oj := t[ids[i]].Order, t[ids[j]].Order
		if oi != oj {
			return oi < oj
		}
		return ids[i] < ids[j]
	})
	return ids
}
