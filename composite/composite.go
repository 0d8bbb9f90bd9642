// Package composite splits structured date values into independently placed
// tokens.
//
// A composite date looks like "14/May/May/1985": day, local month,
// international month and year. Each token and each of the three "/"
// separators is drawn inside its own sub-container, positioned relative to
// the parent field origin.
package composite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/gogpu/idstamp/field"
)

// ErrMalformed is returned when a value does not split into exactly four
// tokens. It is a warning: Layout still returns a usable placement.
var ErrMalformed = errors.New("composite: malformed value")

// Separator is the glyph drawn between tokens.
const Separator = "/"

// FallbackWidth is the width of the single container used for malformed
// values.
const FallbackWidth = 200

// DefaultHeight is the height of every default sub-container.
const DefaultHeight = 17

// Parts holds the four tokens of a composite date.
type Parts struct {
	Day        string
	MonthLocal string
	MonthIntl  string
	Year       string
}

// Split splits s on "/" into exactly four trimmed tokens.
func Split(s string) (Parts, error) {
	tok := strings.Split(s, Separator)
	if len(tok) != 4 {
		return Parts{}, fmt.Errorf("%w: %q has %d tokens, want 4", ErrMalformed, s, len(tok))
	}
	for i := range tok {
		tok[i] = strings.TrimSpace(tok[i])
	}
	return Parts{Day: tok[0], MonthLocal: tok[1], MonthIntl: tok[2], Year: tok[3]}, nil
}

// Tokens returns the parts in render order.
func (p Parts) Tokens() []string {
	return []string{p.Day, p.MonthLocal, p.MonthIntl, p.Year}
}

// byKey returns the text drawn for a sub-container key.
func (p Parts) byKey(key string) string {
	switch key {
	case field.SubDay:
		return p.Day
	case field.SubMonthLocal:
		return p.MonthLocal
	case field.SubMonthIntl:
		return p.MonthIntl
	case field.SubYear:
		return p.Year
	default:
		return Separator
	}
}

// IsSeparator reports whether key names a separator sub-container.
func IsSeparator(key string) bool {
	switch key {
	case field.SubSep1, field.SubSep2, field.SubSep3:
		return true
	}
	return false
}

// DefaultSubContainers returns the stock layout of a composite date field.
func DefaultSubContainers() map[string]field.SubContainer {
	box := func(x, w int) field.SubContainer {
		return field.SubContainer{
			Rect:       field.Rect{X: x, Width: w, Height: DefaultHeight},
			FontSizePt: field.DefaultFontSizePt,
		}
	}
	return map[string]field.SubContainer{
		field.SubDay:        box(0, 25),
		field.SubMonthLocal: box(33, 35),
		field.SubMonthIntl:  box(76, 35),
		field.SubYear:       box(119, 40),
		field.SubSep1:       box(25, 8),
		field.SubSep2:       box(68, 8),
		field.SubSep3:       box(111, 8),
	}
}

// Placement is one token ready to draw.
type Placement struct {
	Key  string
	Text string
	// At is the top-left text anchor in canvas coordinates.
	At image.Point
	// Box is the sub-container rectangle in canvas coordinates. It is a
	// visual reference only.
	Box image.Rectangle
	// Style carries the token's font, size, colour, bold and spacing.
	Style field.SubContainer
}

// Separator reports whether the placement draws a separator glyph.
func (p Placement) Separator() bool { return IsSeparator(p.Key) }

// Layout splits s and places every token and separator relative to origin.
// subs overrides the default sub-containers key by key. Each rectangle
// attribute left zero and not marked in Set keeps the key's default, so a
// partial override moves only what it names. A zero font size means 12pt
// and a zero colour means black.
//
// A malformed s yields a single placement holding the whole string in a
// FallbackWidth container at origin, together with an error matching
// ErrMalformed that callers should log and otherwise ignore.
func Layout(origin image.Point, s string, subs map[string]field.SubContainer) ([]Placement, error) {
	resolved := resolveSubs(subs)

	parts, err := Split(s)
	if err != nil {
		fb := field.SubContainer{
			Rect:       field.Rect{Width: FallbackWidth, Height: DefaultHeight},
			FontSizePt: resolved[field.SubDay].FontSizePt,
			Color:      resolved[field.SubDay].Color,
		}
		return []Placement{{
			Key:   "value",
			Text:  s,
			At:    origin,
			Box:   image.Rect(origin.X, origin.Y, origin.X+FallbackWidth, origin.Y+DefaultHeight),
			Style: fb,
		}}, err
	}

	out := make([]Placement, 0, len(field.SubKeys))
	for _, key := range field.SubKeys {
		sc := resolved[key]
		out = append(out, Placement{
			Key:   key,
			Text:  parts.byKey(key),
			At:    field.ResolveSub(origin, sc),
			Box:   sc.Rect.Bounds().Add(origin),
			Style: sc,
		})
	}
	return out, nil
}

// resolveSubs merges overrides onto the defaults.
func resolveSubs(subs map[string]field.SubContainer) map[string]field.SubContainer {
	out := DefaultSubContainers()
	for key, def := range out {
		sc, ok := subs[key]
		if !ok {
			def.Color = color.NRGBA{A: 0xff}
			out[key] = def
			continue
		}
		sc.Rect.X = inherit(sc.Rect.X, def.Rect.X, sc.Set.Has(field.SubX))
		sc.Rect.Y = inherit(sc.Rect.Y, def.Rect.Y, sc.Set.Has(field.SubY))
		sc.Rect.Width = inherit(sc.Rect.Width, def.Rect.Width, sc.Set.Has(field.SubWidth))
		sc.Rect.Height = inherit(sc.Rect.Height, def.Rect.Height, sc.Set.Has(field.SubHeight))
		if sc.FontSizePt == 0 {
			sc.FontSizePt = def.FontSizePt
		}
		if sc.Color == (color.NRGBA{}) {
			sc.Color = color.NRGBA{A: 0xff}
		}
		out[key] = sc
	}
	return out
}

func inherit(v, def int, set bool) int {
	if v == 0 && !set {
		return def
	}
	return v
}
