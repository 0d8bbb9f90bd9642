package text

import (
	"errors"
	"log/slog"
	"math"
)

// DefaultDPI is the resolution used to convert point sizes to pixels.
const DefaultDPI = 96

// DefaultWarmSizes are the point sizes preloaded by Warm when none are given.
var DefaultWarmSizes = []float64{12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 36, 40, 48, 60, 72, 90}

// Loader loads the font at path. The default is NewFontSourceFromFile.
type Loader func(path string) (*FontSource, error)

// CandidateSource produces candidate paths for a family.
// *Resolver is the standard implementation.
type CandidateSource interface {
	Candidates(family string) []string
}

// PointsToPixels converts a point size to whole pixels at dpi.
func PointsToPixels(pt float64, dpi int) int {
	return int(math.Round(pt / 72 * float64(dpi)))
}

type faceKey struct {
	family string
	px     int
}

// FontCache maps (family, pixel size) to Face handles, loading each on first
// use and returning the cached handle afterwards. Font files are cached per
// path so several sizes of one family parse the file once.
//
// FontCache is safe for concurrent use.
type FontCache struct {
	resolver CandidateSource
	load     Loader
	dpi      int
	logger   *slog.Logger

	faces   *Cache[faceKey, *Face]
	sources *Cache[string, *FontSource]
}

// CacheOption configures a FontCache.
type CacheOption func(*FontCache)

// WithLoader replaces the font file loader.
func WithLoader(l Loader) CacheOption {
	return func(c *FontCache) {
		if l != nil {
			c.load = l
		}
	}
}

// WithDPI sets the resolution for point to pixel conversion.
func WithDPI(dpi int) CacheOption {
	return func(c *FontCache) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// WithLogger sets the logger for cache diagnostics.
func WithLogger(l *slog.Logger) CacheOption {
	return func(c *FontCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSoftLimit bounds the number of cached faces. 0 means unlimited.
func WithSoftLimit(n int) CacheOption {
	return func(c *FontCache) {
		c.faces = NewCache[faceKey, *Face](n)
	}
}

// NewFontCache creates a cache that resolves families through resolver.
// A nil resolver is replaced by an empty *Resolver.
func NewFontCache(resolver CandidateSource, opts ...CacheOption) *FontCache {
	if resolver == nil {
		resolver = &Resolver{}
	}
	c := &FontCache{
		resolver: resolver,
		load:     NewFontSourceFromFile,
		dpi:      DefaultDPI,
		logger:   slog.New(slog.DiscardHandler),
		faces:    NewCache[faceKey, *Face](0),
		sources:  NewCache[string, *FontSource](0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DPI returns the conversion resolution.
func (c *FontCache) DPI() int { return c.dpi }

// Get returns the face for family at sizePt points.
// Failures are not cached; a later call retries the candidates.
func (c *FontCache) Get(family string, sizePt float64) (*Face, error) {
	px := PointsToPixels(sizePt, c.dpi)
	if px <= 0 {
		return nil, ErrInvalidSize
	}
	return c.faces.GetOrLoad(faceKey{family, px}, func() (*Face, error) {
		src, err := c.firstSuccess(family, c.resolver.Candidates(family))
		if err != nil {
			return nil, err
		}
		c.logger.Debug("text: font loaded", "family", family, "px", px, "path", src.Path())
		return src.Face(family, px)
	})
}

// FirstOf returns the face of the first family in families that loads.
// It reports the error of the last family when none loads.
func (c *FontCache) FirstOf(families []string, sizePt float64) (*Face, error) {
	err := error(&FontNotFoundError{})
	for _, fam := range families {
		var f *Face
		if f, err = c.Get(fam, sizePt); err == nil {
			return f, nil
		}
	}
	return nil, err
}

// Warm preloads every (family, size) pair, ignoring failures. It returns the
// number of handles in the cache afterwards. Nil sizes mean DefaultWarmSizes.
func (c *FontCache) Warm(families []string, sizesPt []float64) int {
	if sizesPt == nil {
		sizesPt = DefaultWarmSizes
	}
	for _, fam := range families {
		for _, sz := range sizesPt {
			if _, err := c.Get(fam, sz); err != nil {
				c.logger.Debug("text: warm failed", "family", fam, "size", sz, "err", err)
			}
		}
	}
	return c.faces.Len()
}

// Len returns the number of cached faces.
func (c *FontCache) Len() int { return c.faces.Len() }

// firstSuccess loads the first candidate that parses.
func (c *FontCache) firstSuccess(family string, candidates []string) (*FontSource, error) {
	nf := &FontNotFoundError{Family: family}
	for _, p := range candidates {
		src, err := c.sources.GetOrLoad(p, func() (*FontSource, error) { return c.load(p) })
		if err == nil {
			return src, nil
		}
		nf.Tried = append(nf.Tried, p)
		nf.Last = err
	}
	return nil, nf
}

// IsNotFound reports whether err means a family could not be resolved.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFontNotFound)
}
