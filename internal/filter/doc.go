// Package filter provides the raster filters used when stamping documents.
//
// This package contains:
//   - Gaussian blur (separable, premultiplied-alpha correct)
//   - Colour matrix transformations (tone mapping for photos)
//
// Filters operate on *image.NRGBA and return a new image; sources are never
// modified.
package filter
