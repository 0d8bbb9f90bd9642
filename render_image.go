package idstamp

import (
	"fmt"
	"image"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"

	"github.com/gogpu/idstamp/field"
	"github.com/gogpu/idstamp/text"
	"github.com/gogpu/idstamp/transform"
)

// SignaturePadding surrounds the signature ink before it is fitted.
const SignaturePadding = 8

// DefaultSignatureFonts is the whitelist of handwriting families tried, in
// order, for signature fields.
var DefaultSignatureFonts = []string{
	"BrittanySignature.ttf",
	"Amsterdam.ttf",
	"Autography.otf",
	"Breathing Personal Use Only.ttf",
	"Thesignature.ttf",
	"Amalfi Coast.ttf",
	"South Brittany FREE.otf",
	"White Sign (DemoVersion).otf",
	"Lovtony Script.ttf",
	"Royalty Free.ttf",
	"RetroSignature.otf",
}

// Barcode symbologies.
const (
	SymbologyCode128 = "code128"
	SymbologyQR      = "qr"
	SymbologyPDF417  = "pdf417"
)

// signatureFamilies lists the families to try for spec: its own font first,
// then its whitelist or the compositor's.
func (c *Compositor) signatureFamilies(spec field.Spec) []string {
	list := spec.Fonts
	if len(list) == 0 {
		list = c.sigFonts
	}
	if spec.Font == "" {
		return list
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, spec.Font)
	for _, f := range list {
		if f != spec.Font {
			out = append(out, f)
		}
	}
	return out
}

// drawSignature renders s in the first whitelisted family that loads and
// fits it into the field rectangle. An exhausted whitelist skips the field.
func (c *Compositor) drawSignature(dst *image.NRGBA, spec field.Spec, s string) {
	families := c.signatureFamilies(spec)
	face, err := c.fonts.FirstOf(families, spec.FontSizePt)
	if err != nil {
		c.logger.Warn("idstamp: signature skipped", "field", spec.ID, "tried", len(families), "err", err)
		return
	}

	surf := text.RenderSurface(face, s, spec.Color, spec.BoldThickness,
		2*SignaturePadding, image.Pt(SignaturePadding, SignaturePadding))
	at := field.Resolve(spec)
	rect := image.Rect(at.X, at.Y, at.X+spec.Rect.Width, at.Y+spec.Rect.Height)
	if rect.Empty() {
		transform.Paste(dst, surf, at)
		return
	}
	out, pt := transform.FitInto(surf, rect)
	transform.Paste(dst, out, pt)
	c.logger.Debug("idstamp: signature placed", "field", spec.ID, "family", face.Family(), "at", pt)
}

// drawPhoto resizes img to the field rectangle and composites it.
// A rectangle without a size keeps the image's own size.
func (c *Compositor) drawPhoto(dst *image.NRGBA, spec field.Spec, img image.Image) {
	at := field.Resolve(spec)
	w, h := spec.Rect.Width, spec.Rect.Height
	if w <= 0 || h <= 0 {
		transform.Paste(dst, img, at)
		return
	}
	transform.Paste(dst, transform.Resize(img, w, h), at)
}

// drawBarcode encodes s and scales it to the field rectangle. The barcode
// is never scaled below its natural module size.
func (c *Compositor) drawBarcode(dst *image.NRGBA, spec field.Spec, s string) error {
	bc, err := EncodeBarcode(spec.Symbology, s)
	if err != nil {
		return err
	}
	nb := bc.Bounds()
	w := max(spec.Rect.Width, nb.Dx())
	h := max(spec.Rect.Height, nb.Dy())
	scaled, err := barcode.Scale(bc, w, h)
	if err != nil {
		return fmt.Errorf("idstamp: scale barcode: %w", err)
	}
	transform.Paste(dst, scaled, field.Resolve(spec))
	return nil
}

// EncodeBarcode encodes s with the named symbology. Empty means Code 128.
func EncodeBarcode(symbology, s string) (barcode.Barcode, error) {
	var (
		bc  barcode.Barcode
		err error
	)
	switch strings.ToLower(symbology) {
	case "", SymbologyCode128:
		bc, err = code128.Encode(s)
	case SymbologyQR:
		bc, err = qr.Encode(s, qr.M, qr.Auto)
	case SymbologyPDF417:
		bc, err = pdf417.Encode(s, 2)
	default:
		return nil, fmt.Errorf("idstamp: unknown barcode symbology %q", symbology)
	}
	if err != nil {
		return nil, fmt.Errorf("idstamp: encode %s barcode: %w", symbology, err)
	}
	return bc, nil
}
