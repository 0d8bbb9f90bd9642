// Package transform resamples, rotates and pastes rendered field surfaces.
//
// Every function returns a new image and leaves its input untouched, except
// Paste, which composites onto its destination in place. Resampling uses the
// Lanczos filter from github.com/disintegration/imaging.
//
// The numeric constants in this package are visually tuned against the
// reference templates. Change them only together with a visual check.
package transform
