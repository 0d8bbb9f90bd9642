package photo

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"

	"github.com/gogpu/idstamp/transform"
)

// Point is a sub-pixel image position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Landmarks holds the eye centres of the detected face, in source pixels.
type Landmarks struct {
	LeftEye  Point `json:"left_eye"`
	RightEye Point `json:"right_eye"`
}

// Segmenter removes the background of a portrait. The result keeps the
// subject opaque and the background transparent.
type Segmenter interface {
	Segment(ctx context.Context, img image.Image) (image.Image, error)
}

// LandmarkDetector locates the eyes of the most prominent face.
// It returns nil, nil when no face is found.
type LandmarkDetector interface {
	Detect(ctx context.Context, img image.Image) (*Landmarks, error)
}

// Placement constants for eye-centred framing.
const (
	// FaceWidthRatio estimates face width from the distance between the eyes.
	FaceWidthRatio = 2.5
	// FaceFill is the share of the slot width the face occupies.
	FaceFill = 0.65
	// EyeLine is the eye height as a fraction of the slot height.
	EyeLine = 0.45
	// EyeNudgeX shifts the eye centre left of the slot centre.
	EyeNudgeX = 15
)

// Place positions img on a transparent canvas of the given size.
// With landmarks the face is scaled to FaceFill of the width and the eye
// midpoint is moved to (size.X/2-EyeNudgeX, size.Y*EyeLine). Without
// landmarks the image is fitted and centred.
func Place(img image.Image, lm *Landmarks, size image.Point) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	if size.X <= 0 || size.Y <= 0 {
		return canvas
	}
	if lm == nil {
		return fitCentre(canvas, img)
	}

	faceW := math.Abs(lm.RightEye.X-lm.LeftEye.X) * FaceWidthRatio
	if faceW <= 0 {
		return fitCentre(canvas, img)
	}

	scale := float64(size.X) * FaceFill / faceW
	b := img.Bounds()
	nw := max(1, int(float64(b.Dx())*scale))
	nh := max(1, int(float64(b.Dy())*scale))
	scaled := imaging.Resize(img, nw, nh, imaging.Lanczos)

	eyeX := (lm.LeftEye.X + lm.RightEye.X) / 2 * scale
	eyeY := (lm.LeftEye.Y + lm.RightEye.Y) / 2 * scale
	targetX := float64(size.X/2 - EyeNudgeX)
	targetY := float64(int(float64(size.Y) * EyeLine))

	transform.Paste(canvas, scaled, image.Pt(int(targetX-eyeX), int(targetY-eyeY)))
	return canvas
}

func fitCentre(canvas *image.NRGBA, img image.Image) *image.NRGBA {
	w, h := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	b := img.Bounds()
	if b.Empty() {
		return canvas
	}
	scale := math.Min(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	nw := max(1, int(float64(b.Dx())*scale))
	nh := max(1, int(float64(b.Dy())*scale))
	scaled := imaging.Resize(img, nw, nh, imaging.Lanczos)
	transform.Paste(canvas, scaled, image.Pt((w-nw)/2, (h-nh)/2))
	return canvas
}

// Options configures Prepare.
type Options struct {
	Segmenter Segmenter
	Detector  LandmarkDetector
	Logger    *slog.Logger
}

// Prepare runs the full pipeline and returns a size.X x size.Y portrait.
// A nil Segmenter keeps the original background and a nil Detector always
// uses the centred fit. A detector error is logged and treated as no face;
// a segmenter error is returned.
func Prepare(ctx context.Context, img image.Image, size image.Point, opts Options) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("photo: nil image")
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	subject := imaging.Clone(img)
	if opts.Segmenter != nil {
		seg, err := opts.Segmenter.Segment(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("photo: segment: %w", err)
		}
		subject = Feather(imaging.Clone(seg))
	}

	var lm *Landmarks
	if opts.Detector != nil {
		var err error
		lm, err = opts.Detector.Detect(ctx, img)
		if err != nil {
			log.Warn("photo: landmark detection failed, using centred fit", "err", err)
			lm = nil
		} else if lm == nil {
			log.Debug("photo: no face found, using centred fit")
		}
	}

	out := Place(subject, lm, size)
	out = Tone(out)
	Frame(out)
	return out, nil
}
