package idstamp

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/idstamp/field"
	"github.com/gogpu/idstamp/text"
)

// DefaultFamily is used for fields that name no font.
const DefaultFamily = "Arial"

// Compositor stamps field values onto copies of a template.
// It is safe for concurrent use once constructed.
type Compositor struct {
	tmpl     *Template
	fonts    *text.FontCache
	specs    field.Table
	fallback string
	sigFonts []string
	overlay  bool
	logger   *slog.Logger
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithFallbackFamily sets the family substituted when a non-strict field's
// font cannot be resolved. Empty disables substitution.
func WithFallbackFamily(family string) Option {
	return func(c *Compositor) {
		c.fallback = family
	}
}

// WithSignatureFonts replaces the default signature whitelist used by
// signature fields that list no fonts of their own.
func WithSignatureFonts(families ...string) Option {
	return func(c *Compositor) {
		c.sigFonts = families
	}
}

// WithOverlay draws the reference rectangles of every field on top of each
// rendered document.
func WithOverlay(enabled bool) Option {
	return func(c *Compositor) {
		c.overlay = enabled
	}
}

// WithLogger sets the logger for this compositor. By default it uses
// the package logger returned by Logger at construction time.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCompositor returns a Compositor over tmpl, fonts and specs.
// None of them may be modified afterwards.
func NewCompositor(tmpl *Template, fonts *text.FontCache, specs field.Table, opts ...Option) *Compositor {
	c := &Compositor{
		tmpl:     tmpl,
		fonts:    fonts,
		specs:    specs,
		sigFonts: DefaultSignatureFonts,
		logger:   Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Specs returns the field table.
func (c *Compositor) Specs() field.Table { return c.specs }

// Render stamps values in order onto a copy of the template.
//
// Values without a spec are skipped with a warning. The first field error
// without a fallback aborts the render and is returned as a *RenderError;
// no partial image is returned.
func (c *Compositor) Render(values []FieldValue) (*image.NRGBA, error) {
	if c.tmpl == nil {
		return nil, ErrNilTemplate
	}
	dst := c.tmpl.Canvas()

	for _, fv := range values {
		spec, ok := c.specs.Get(fv.ID)
		if !ok {
			c.logger.Warn("idstamp: field skipped", "field", fv.ID, "err", ErrFieldSpecMissing)
			continue
		}
		if fv.Value.IsZero() {
			c.logger.Debug("idstamp: empty value", "field", fv.ID)
			continue
		}
		if err := c.renderField(dst, spec, fv.Value); err != nil {
			return nil, &RenderError{Field: fv.ID, Err: err}
		}
		c.logger.Debug("idstamp: field rendered", "field", fv.ID, "kind", spec.Kind, "at", field.Resolve(spec))
	}

	if c.overlay {
		Overlay(dst, c.specs)
	}
	return dst, nil
}

// RenderMap renders values in the table's order. Ids missing from the
// table are appended in sorted order and then skipped by Render.
func (c *Compositor) RenderMap(values map[string]Value) (*image.NRGBA, error) {
	return c.Render(c.Order(values))
}

// Order arranges values by the table's render order.
func (c *Compositor) Order(values map[string]Value) []FieldValue {
	out := make([]FieldValue, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, id := range c.specs.Ordered() {
		if v, ok := values[id]; ok {
			out = append(out, FieldValue{ID: id, Value: v})
			seen[id] = true
		}
	}
	extra := make(field.Table)
	for id := range values {
		if !seen[id] {
			extra[id] = field.Spec{}
		}
	}
	for _, id := range extra.Ordered() {
		out = append(out, FieldValue{ID: id, Value: values[id]})
	}
	return out
}

// Check reports every value without a spec, joined into one error whose
// parts are *RenderError values wrapping ErrFieldSpecMissing.
func (c *Compositor) Check(values []FieldValue) error {
	var errs []error
	for _, fv := range values {
		if _, ok := c.specs[fv.ID]; !ok {
			errs = append(errs, &RenderError{Field: fv.ID, Err: ErrFieldSpecMissing})
		}
	}
	return errors.Join(errs...)
}

func (c *Compositor) renderField(dst *image.NRGBA, spec field.Spec, v Value) error {
	switch spec.Kind {
	case field.KindPhoto:
		if v.Kind() != ValueImage {
			return fmt.Errorf("%w: %s wants an image", ErrValueType, spec.Kind)
		}
		c.drawPhoto(dst, spec, v.Image())
		return nil
	}

	if v.Kind() != ValueText {
		return fmt.Errorf("%w: %s wants text", ErrValueType, spec.Kind)
	}
	s := v.String()

	switch spec.Kind {
	case field.KindDate:
		return c.drawDate(dst, spec, s)
	case field.KindSignature:
		c.drawSignature(dst, spec, s)
		return nil
	case field.KindBarcode:
		return c.drawBarcode(dst, spec, s)
	case field.KindMRZ:
		c.checkMRZ(spec, s)
		return c.drawText(dst, spec, s)
	default:
		return c.drawText(dst, spec, s)
	}
}

// face resolves family at sizePt, substituting the fallback family when the
// field is not strict.
func (c *Compositor) face(family string, sizePt float64, strict bool) (*text.Face, error) {
	if family == "" {
		family = c.fallback
		if family == "" {
			family = DefaultFamily
		}
	}
	f, err := c.fonts.Get(family, sizePt)
	if err == nil {
		return f, nil
	}
	if strict || c.fallback == "" || c.fallback == family || !text.IsNotFound(err) {
		return nil, err
	}
	c.logger.Warn("idstamp: font substituted", "family", family, "fallback", c.fallback, "err", err)
	return c.fonts.Get(c.fallback, sizePt)
}
