package text

import (
	"fmt"
	"os"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a parsed font file.
// One FontSource can create Face instances at any pixel size.
// FontSource is heavyweight and is shared through FontCache.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr must point to the FontSource itself.
	addr *FontSource

	font *opentype.Font
	name string
	path string
}

// NewFontSource parses TTF, OTF or the first face of a TTC collection.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := parseFont(data)
	if err != nil {
		return nil, err
	}

	s := &FontSource{font: f}
	s.addr = s
	s.name = fontName(f)
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- font paths come from the layout configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font file: %w", err)
	}

	s, err := NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("text: %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Name returns the full font name from the name table, or "" if absent.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Path returns the file the source was loaded from, or "" for in-memory data.
func (s *FontSource) Path() string {
	s.copyCheck()
	return s.path
}

// Face creates a Face at the given pixel size.
// Panics if s is nil.
func (s *FontSource) Face(family string, px int) (*Face, error) {
	if s == nil {
		panic("text: FontSource is nil")
	}
	s.copyCheck()
	return newFace(s, family, px)
}

// copyCheck panics if the FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: illegal use of non-zero FontSource copied by value")
	}
}

func parseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err == nil {
		return f, nil
	}
	coll, cerr := opentype.ParseCollection(data)
	if cerr != nil || coll.NumFonts() == 0 {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return coll.Font(0)
}

func fontName(f *opentype.Font) string {
	var buf sfnt.Buffer
	name, err := f.Name(&buf, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}
