package field

import (
	"fmt"
	"image/color"
	"strconv"
)

// ParseColor parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" (the leading
// '#' is optional) into an NRGBA colour.
func ParseColor(hex string) (color.NRGBA, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b, a uint64
	a = 0xff
	var err error
	parse := func(part string, scale uint64) uint64 {
		if err != nil {
			return 0
		}
		var v uint64
		v, err = strconv.ParseUint(part, 16, 8)
		return v * scale
	}

	switch len(s) {
	case 3:
		r, g, b = parse(s[0:1], 17), parse(s[1:2], 17), parse(s[2:3], 17)
	case 4:
		r, g, b, a = parse(s[0:1], 17), parse(s[1:2], 17), parse(s[2:3], 17), parse(s[3:4], 17)
	case 6:
		r, g, b = parse(s[0:2], 1), parse(s[2:4], 1), parse(s[4:6], 1)
	case 8:
		r, g, b, a = parse(s[0:2], 1), parse(s[2:4], 1), parse(s[4:6], 1), parse(s[6:8], 1)
	default:
		return color.NRGBA{}, fmt.Errorf("field: invalid colour %q", hex)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("field: invalid colour %q: %w", hex, err)
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// MustParseColor is like ParseColor but panics on error.
// It is intended for package-level defaults.
func MustParseColor(hex string) color.NRGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
