package idstamp

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldSpecMissing reports a field value without a layout rule.
	ErrFieldSpecMissing = errors.New("idstamp: field spec missing")

	// ErrValueType reports a value whose type does not suit its field kind,
	// such as text for a photo field.
	ErrValueType = errors.New("idstamp: value type does not match field kind")

	// ErrNilTemplate is returned when rendering without a template.
	ErrNilTemplate = errors.New("idstamp: nil template")
)

// RenderError identifies the field that aborted a render.
type RenderError struct {
	Field string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("idstamp: field %q: %v", e.Field, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
