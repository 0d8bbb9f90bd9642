package idstamp

import "image"

// ValueKind tells which payload a Value holds.
type ValueKind int

const (
	// ValueNone is the zero Value.
	ValueNone ValueKind = iota
	ValueText
	ValueImage
)

// Value is the payload of one field: a string or an image.
type Value struct {
	kind ValueKind
	text string
	img  image.Image
}

// Text returns a text Value.
func Text(s string) Value { return Value{kind: ValueText, text: s} }

// Image returns an image Value. A nil image yields the zero Value.
func Image(img image.Image) Value {
	if img == nil {
		return Value{}
	}
	return Value{kind: ValueImage, img: img}
}

// Kind returns the payload kind.
func (v Value) Kind() ValueKind { return v.kind }

// IsZero reports whether v holds nothing.
func (v Value) IsZero() bool { return v.kind == ValueNone }

// String returns the text payload, or "" for other kinds.
func (v Value) String() string { return v.text }

// Image returns the image payload, or nil for other kinds.
func (v Value) Image() image.Image { return v.img }

// FieldValue pairs a field id with its value.
type FieldValue struct {
	ID    string
	Value Value
}
