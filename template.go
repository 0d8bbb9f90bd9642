package idstamp

import (
	"fmt"
	"image"

	"github.com/gogpu/idstamp/internal/imageio"
)

// Template is an immutable decoded document background.
// It is safe for concurrent use.
type Template struct {
	img  *image.NRGBA
	path string
}

// NewTemplate copies img into a new Template.
func NewTemplate(img image.Image) *Template {
	return &Template{img: imageio.ToNRGBA(img)}
}

// LoadTemplate decodes the template at path. PNG, JPEG, GIF, BMP, TIFF and
// WebP files are accepted.
func LoadTemplate(path string) (*Template, error) {
	img, err := imageio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("idstamp: load template: %w", err)
	}
	t := NewTemplate(img)
	t.path = path
	Logger().Info("idstamp: template loaded", "path", path, "size", t.img.Bounds().Size())
	return t, nil
}

// Bounds returns the template rectangle, anchored at the origin.
func (t *Template) Bounds() image.Rectangle { return t.img.Bounds() }

// Path returns the file the template was loaded from, if any.
func (t *Template) Path() string { return t.path }

// Canvas returns a writable copy of the template.
func (t *Template) Canvas() *image.NRGBA {
	dst := image.NewNRGBA(t.img.Rect)
	copy(dst.Pix, t.img.Pix)
	return dst
}
