package text

import (
	"errors"
	"strings"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrFontNotFound is matched by every *FontNotFoundError.
	ErrFontNotFound = errors.New("text: font not found")

	// ErrInvalidSize is returned for non-positive font sizes.
	ErrInvalidSize = errors.New("text: invalid font size")
)

// FontNotFoundError is returned when no candidate path for a family could be
// loaded.
type FontNotFoundError struct {
	Family string
	// Tried lists the candidate paths in the order they were attempted.
	Tried []string
	// Last is the error of the last attempted candidate, if any.
	Last error
}

func (e *FontNotFoundError) Error() string {
	var b strings.Builder
	b.WriteString("text: font not found: ")
	b.WriteString(e.Family)
	if len(e.Tried) > 0 {
		b.WriteString(" (tried ")
		b.WriteString(strings.Join(e.Tried, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether target is ErrFontNotFound.
func (e *FontNotFoundError) Is(target error) bool {
	return target == ErrFontNotFound
}

// Unwrap returns the last load error.
func (e *FontNotFoundError) Unwrap() error {
	return e.Last
}
