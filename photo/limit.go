package photo

import (
	"context"
	"image"
)

// Limiter bounds the number of concurrent calls into wrapped collaborators.
// All collaborators wrapped by one Limiter share its slots.
type Limiter struct {
	slots chan struct{}
}

// Limit returns a Limiter admitting at most n concurrent calls.
// n below 1 is treated as 1.
func Limit(n int) *Limiter {
	return &Limiter{slots: make(chan struct{}, max(1, n))}
}

func (l *Limiter) acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Limiter) release() { <-l.slots }

// Segmenter wraps s so that its calls take a slot.
func (l *Limiter) Segmenter(s Segmenter) Segmenter {
	return limitedSegmenter{l: l, s: s}
}

// Detector wraps d so that its calls take a slot.
func (l *Limiter) Detector(d LandmarkDetector) LandmarkDetector {
	return limitedDetector{l: l, d: d}
}

type limitedSegmenter struct {
	l *Limiter
	s Segmenter
}

func (ls limitedSegmenter) Segment(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ls.l.acquire(ctx); err != nil {
		return nil, err
	}
	defer ls.l.release()
	return ls.s.Segment(ctx, img)
}

type limitedDetector struct {
	l *Limiter
	d LandmarkDetector
}

func (ld limitedDetector) Detect(ctx context.Context, img image.Image) (*Landmarks, error) {
	if err := ld.l.acquire(ctx); err != nil {
		return nil, err
	}
	defer ld.l.release()
	return ld.d.Detect(ctx, img)
}
