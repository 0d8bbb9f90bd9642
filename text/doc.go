// Package text loads fonts and draws glyph runs for document stamping.
//
// # Overview
//
// The package has two halves:
//
//   - FontCache resolves a family name to a font file, parses it once and
//     hands out immutable [Face] handles keyed by (family, pixel size).
//   - The draw functions render a string onto an *image.NRGBA at a top-left
//     anchor: plain ([Draw]), faux-bold ([DrawBold]), letter-spaced and
//     optionally blurred ([DrawSpaced]), or into a fresh transparent surface
//     ([RenderSurface]) for later transforms.
//
// # Coordinates
//
// All draw functions take (x, y) as the top-left corner of the ascender line:
// the baseline sits at y + ascent. This mirrors the anchor used by the layout
// files, so a field at (100, 40) has its tallest glyphs touching y = 40.
//
// # Sizes
//
// Layouts specify sizes in points. The cache converts to pixels with
// px = round(pt / 72 * dpi) using a DPI of 96 unless configured otherwise,
// and keys handles by that pixel size.
//
// # Concurrency
//
// FontCache, FontSource and Face are safe for concurrent use. x/image faces
// are not, so each Face keeps a pool of them internally.
package text
