package idstamp

import (
	"image"
	"unicode/utf8"

	"github.com/gogpu/idstamp/composite"
	"github.com/gogpu/idstamp/field"
	"github.com/gogpu/idstamp/mrz"
	"github.com/gogpu/idstamp/text"
	"github.com/gogpu/idstamp/transform"
)

// drawText renders a text field. Rotation wins over stretch-to-fit, which
// wins over manual scaling; letter spacing and blur apply to unrotated,
// unscaled text only.
func (c *Compositor) drawText(dst *image.NRGBA, spec field.Spec, s string) error {
	face, err := c.face(spec.Font, spec.FontSizePt, spec.StrictFont)
	if err != nil {
		return err
	}
	at := field.Resolve(spec)

	switch {
	case spec.Rotation != 0:
		c.drawVertical(dst, spec, face, s, at)
	case spec.StretchToFit:
		pad := spec.StretchPadding
		surf := text.RenderSurface(face, s, spec.Color, spec.BoldThickness, pad, image.Pt(pad/2, pad/2))
		transform.Paste(dst, transform.StretchToFit(surf, spec.FitWidth), at)
	case spec.Scaled():
		surf := text.RenderSurface(face, s, spec.Color, spec.BoldThickness, 0, image.Point{})
		transform.Paste(dst, transform.Scale(surf, spec.ScaleX, spec.ScaleY), at)
	case spec.LetterSpacing != 0 || spec.BlurRadius > 0:
		text.DrawSpaced(dst, at.X, at.Y, s, face, spec.Color, spacing(spec))
	default:
		text.DrawBold(dst, at.X, at.Y, s, face, spec.Color, spec.BoldThickness)
	}
	return nil
}

func spacing(spec field.Spec) text.SpacingOptions {
	exclude := spec.BlurExclude
	if exclude == "" {
		exclude = field.DefaultBlurExclude
	}
	return text.SpacingOptions{
		Thickness:     spec.BoldThickness,
		LetterSpacing: spec.LetterSpacing,
		BlurRadius:    spec.BlurRadius,
		Padding:       text.Padding{Normal: spec.BlurPadding.Normal, Hyphen: spec.BlurPadding.Hyphen},
		Exclude:       exclude,
	}
}

// drawVertical renders a rotated field. Letter-spaced fields rotate each
// character on its own and stack them downwards.
func (c *Compositor) drawVertical(dst *image.NRGBA, spec field.Spec, face *text.Face, s string, at image.Point) {
	if spec.LetterSpacing == 0 {
		surf := text.RenderSurface(face, s, spec.Color, spec.BoldThickness, transform.VerticalPadding, image.Point{})
		out := transform.Vertical(surf, spec.Rotation, spec.ScaleX, spec.ScaleY, spec.Rect.Height)
		transform.Paste(dst, out, at)
		return
	}

	half := transform.VerticalCharPadding / 2
	cur := at
	for _, r := range s {
		box := text.RenderSurface(face, string(r), spec.Color, spec.BoldThickness,
			transform.VerticalCharPadding, image.Pt(half, half))
		rot := transform.RotateExpand(box, spec.Rotation)
		transform.Paste(dst, rot, cur)
		cur.Y += rot.Bounds().Dy() + spec.LetterSpacing
	}
}

// drawDate renders a composite date. A malformed value is drawn whole and
// logged.
func (c *Compositor) drawDate(dst *image.NRGBA, spec field.Spec, s string) error {
	places, err := composite.Layout(field.Resolve(spec), s, spec.SubContainers)
	if err != nil {
		c.logger.Warn("idstamp: composite value fallback", "field", spec.ID, "value", s, "err", err)
	}

	for _, p := range places {
		family := p.Style.Font
		if family == "" {
			family = spec.Font
		}
		face, err := c.face(family, p.Style.FontSizePt, spec.StrictFont)
		if err != nil {
			return err
		}
		if p.Style.LetterSpacing != 0 {
			text.DrawSpaced(dst, p.At.X, p.At.Y, p.Text, face, p.Style.Color, text.SpacingOptions{
				Thickness:     p.Style.BoldThickness,
				LetterSpacing: p.Style.LetterSpacing,
			})
			continue
		}
		text.DrawBold(dst, p.At.X, p.At.Y, p.Text, face, p.Style.Color, p.Style.BoldThickness)
	}
	return nil
}

// checkMRZ warns about machine readable zone lines of the wrong length.
func (c *Compositor) checkMRZ(spec field.Spec, s string) {
	if n := utf8.RuneCountInString(s); n != mrz.LineLength {
		c.logger.Warn("idstamp: mrz line length", "field", spec.ID, "len", n, "want", mrz.LineLength,
			"err", mrz.ErrFormat)
	}
}
