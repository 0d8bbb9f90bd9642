// Package config loads the document layout and runtime settings from TOML.
//
// A configuration file names the template image, font lookup locations,
// logging and output settings, the optional photo services, and one
// [fields.<id>] table per field. Relative paths are resolved against the
// directory of the configuration file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/idstamp/field"
	"github.com/gogpu/idstamp/internal/imageio"
	"github.com/gogpu/idstamp/text"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config is the root configuration.
type Config struct {
	// Template is the path of the blank document image.
	Template string `toml:"template"`
	// DPI converts font point sizes to pixels.
	DPI int `toml:"dpi"`

	Fonts  FontsConfig            `toml:"fonts"`
	Log    LogConfig              `toml:"log"`
	Output OutputConfig           `toml:"output"`
	Photo  PhotoConfig            `toml:"photo"`
	Fields map[string]FieldConfig `toml:"fields"`

	// dir is the directory relative paths are resolved against.
	dir string
}

// FontsConfig controls font file resolution.
type FontsConfig struct {
	Dirs        []string            `toml:"dirs"`
	Paths       map[string]string   `toml:"paths"`
	SystemPaths map[string][]string `toml:"system_paths"`
	// SystemFonts enables the installed-font scan as a last resort.
	SystemFonts bool `toml:"system_fonts"`
	// Fallback is the family substituted when a non-strict family is missing.
	Fallback string `toml:"fallback"`
	// Signature overrides the default signature font whitelist.
	Signature    []string  `toml:"signature"`
	WarmFamilies []string  `toml:"warm_families"`
	WarmSizes    []float64 `toml:"warm_sizes"`
	CacheDir     string    `toml:"cache_dir"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

// OutputConfig controls the rendered image.
type OutputConfig struct {
	Format  string `toml:"format"`
	Quality int    `toml:"quality"`
	Overlay bool   `toml:"overlay"`
}

// PhotoConfig points at the optional portrait services.
type PhotoConfig struct {
	SegmentURL  string `toml:"segment_url"`
	LandmarkURL string `toml:"landmark_url"`
	// Concurrency bounds simultaneous calls into the services.
	Concurrency int `toml:"concurrency"`
	Width       int `toml:"width"`
	Height      int `toml:"height"`
}

// FieldConfig is the TOML form of a field.Spec.
type FieldConfig struct {
	Kind      string  `toml:"kind"`
	Order     int     `toml:"order"`
	X         int     `toml:"x"`
	Y         int     `toml:"y"`
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	OffsetX   int     `toml:"offset_x"`
	OffsetY   int     `toml:"offset_y"`
	Alignment string  `toml:"alignment"`
	Rotation  float64 `toml:"rotation"`

	Font       string   `toml:"font"`
	FontSize   float64  `toml:"font_size"`
	StrictFont bool     `toml:"strict_font"`
	Fonts      []string `toml:"fonts"`
	Color      string   `toml:"color"`

	BoldThickness float64 `toml:"bold_thickness"`
	LetterSpacing int     `toml:"letter_spacing"`
	ScaleX        float64 `toml:"scale_x"`
	ScaleY        float64 `toml:"scale_y"`

	StretchToFit   bool `toml:"stretch_to_fit"`
	FitWidth       int  `toml:"fit_width"`
	StretchPadding int  `toml:"stretch_padding"`

	BlurRadius        float64 `toml:"blur_radius"`
	BlurPadding       int     `toml:"blur_padding"`
	BlurPaddingHyphen int     `toml:"blur_padding_hyphen"`
	BlurExclude       string  `toml:"blur_exclude"`

	Symbology string `toml:"symbology"`

	Sub map[string]SubConfig `toml:"sub"`
}

// SubConfig is the TOML form of a field.SubContainer. Rectangle keys left
// out keep the sub-container's default.
type SubConfig struct {
	X             *int    `toml:"x"`
	Y             *int    `toml:"y"`
	Width         *int    `toml:"width"`
	Height        *int    `toml:"height"`
	OffsetX       int     `toml:"offset_x"`
	OffsetY       int     `toml:"offset_y"`
	Font          string  `toml:"font"`
	FontSize      float64 `toml:"font_size"`
	Color         string  `toml:"color"`
	BoldThickness float64 `toml:"bold_thickness"`
	LetterSpacing int     `toml:"letter_spacing"`
}

// ///////////////////////////////////////////////
// Defaults and Loading
// ///////////////////////////////////////////////

// Defaults for settings a file leaves unset.
const (
	DefaultLogLevel     = "info"
	DefaultMaxSizeMB    = 10
	DefaultQuality      = 95
	DefaultConcurrency  = 1
	DefaultPhotoWidth   = 220
	DefaultPhotoHeight  = 280
	DefaultFallbackFont = "Arial"
)

// Default returns a configuration with every default applied and no fields.
func Default() *Config {
	return &Config{
		DPI: text.DefaultDPI,
		Fonts: FontsConfig{
			Fallback: DefaultFallbackFont,
		},
		Log: LogConfig{
			Level:     DefaultLogLevel,
			MaxSizeMB: DefaultMaxSizeMB,
		},
		Output: OutputConfig{
			Format:  imageio.PNG.String(),
			Quality: DefaultQuality,
		},
		Photo: PhotoConfig{
			Concurrency: DefaultConcurrency,
			Width:       DefaultPhotoWidth,
			Height:      DefaultPhotoHeight,
		},
		Fields: map[string]FieldConfig{},
	}
}

// Load reads and validates the configuration at path.
// Keys the decoder does not recognise are logged and otherwise ignored.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes and validates configuration data. Relative paths in the
// result are resolved against the working directory.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("config: unknown key", "key", key.String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// Validate checks every section and field. All problems are reported
// together.
func (c *Config) Validate() error {
	var errs []error
	if c.DPI <= 0 {
		errs = append(errs, fmt.Errorf("dpi must be positive, got %d", c.DPI))
	}
	if _, err := imageio.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		errs = append(errs, fmt.Errorf("output.quality must be in [1, 100], got %d", c.Output.Quality))
	}
	if c.Log.MaxSizeMB < 0 {
		errs = append(errs, fmt.Errorf("log.max_size_mb must not be negative, got %d", c.Log.MaxSizeMB))
	}
	if c.Photo.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("photo.concurrency must be at least 1, got %d", c.Photo.Concurrency))
	}
	for _, sz := range c.Fonts.WarmSizes {
		if sz <= 0 {
			errs = append(errs, fmt.Errorf("fonts.warm_sizes: size %v must be positive", sz))
		}
	}

	ids := make([]string, 0, len(c.Fields))
	for id := range c.Fields {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if _, err := c.Fields[id].Spec(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Spec converts the TOML form into a field.Spec.
func (f FieldConfig) Spec(id string) (field.Spec, error) {
	kind, ok := field.ParseKind(f.Kind)
	if !ok {
		return field.Spec{}, fmt.Errorf("fields.%s: unknown kind %q", id, f.Kind)
	}
	align, ok := field.ParseAlignment(f.Alignment)
	if !ok {
		return field.Spec{}, fmt.Errorf("fields.%s: unknown alignment %q", id, f.Alignment)
	}
	col, err := parseColor(f.Color)
	if err != nil {
		return field.Spec{}, fmt.Errorf("fields.%s.color: %w", id, err)
	}
	if f.FontSize < 0 {
		return field.Spec{}, fmt.Errorf("fields.%s.font_size must not be negative", id)
	}
	if f.Width < 0 || f.Height < 0 {
		return field.Spec{}, fmt.Errorf("fields.%s: negative rectangle size", id)
	}
	if kind == field.KindBarcode && f.Symbology == "" {
		return field.Spec{}, fmt.Errorf("fields.%s: barcode field needs a symbology", id)
	}

	spec := field.Spec{
		ID:             id,
		Kind:           kind,
		Order:          f.Order,
		Rect:           field.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
		Offset:         field.Offset{DX: f.OffsetX, DY: f.OffsetY},
		Alignment:      align,
		Rotation:       f.Rotation,
		Font:           f.Font,
		FontSizePt:     f.FontSize,
		StrictFont:     f.StrictFont,
		Fonts:          slices.Clone(f.Fonts),
		Color:          col,
		BoldThickness:  f.BoldThickness,
		LetterSpacing:  f.LetterSpacing,
		ScaleX:         f.ScaleX,
		ScaleY:         f.ScaleY,
		StretchToFit:   f.StretchToFit,
		FitWidth:       f.FitWidth,
		StretchPadding: f.StretchPadding,
		BlurRadius:     f.BlurRadius,
		BlurPadding:    field.BlurPadding{Normal: f.BlurPadding, Hyphen: f.BlurPaddingHyphen},
		BlurExclude:    f.BlurExclude,
		Symbology:      strings.ToLower(f.Symbology),
	}
	if spec.BlurPadding != (field.BlurPadding{}) {
		if spec.BlurPadding.Normal == 0 {
			spec.BlurPadding.Normal = field.DefaultBlurPaddingNormal
		}
		if spec.BlurPadding.Hyphen == 0 {
			spec.BlurPadding.Hyphen = field.DefaultBlurPaddingHyphen
		}
	}

	if len(f.Sub) > 0 {
		if kind != field.KindDate {
			return field.Spec{}, fmt.Errorf("fields.%s: sub-containers need kind \"date\", got %q", id, kind)
		}
		spec.SubContainers = make(map[string]field.SubContainer, len(f.Sub))
		for key, sc := range f.Sub {
			if !slices.Contains(field.SubKeys, key) {
				return field.Spec{}, fmt.Errorf("fields.%s.sub: unknown key %q (want one of %s)", id, key, strings.Join(field.SubKeys, ", "))
			}
			sub, err := sc.subContainer()
			if err != nil {
				return field.Spec{}, fmt.Errorf("fields.%s.sub.%s: %w", id, key, err)
			}
			spec.SubContainers[key] = sub
		}
	}
	return spec, nil
}

func (s SubConfig) subContainer() (field.SubContainer, error) {
	col, err := parseColor(s.Color)
	if err != nil {
		return field.SubContainer{}, fmt.Errorf("color: %w", err)
	}
	var (
		r   field.Rect
		set field.SubAttr
	)
	for _, a := range []struct {
		v    *int
		dst  *int
		attr field.SubAttr
	}{
		{s.X, &r.X, field.SubX},
		{s.Y, &r.Y, field.SubY},
		{s.Width, &r.Width, field.SubWidth},
		{s.Height, &r.Height, field.SubHeight},
	} {
		if a.v != nil {
			*a.dst = *a.v
			set |= a.attr
		}
	}
	return field.SubContainer{
		Rect:          r,
		Set:           set,
		TextOffset:    field.Offset{DX: s.OffsetX, DY: s.OffsetY},
		Font:          s.Font,
		FontSizePt:    s.FontSize,
		Color:         col,
		BoldThickness: s.BoldThickness,
		LetterSpacing: s.LetterSpacing,
	}, nil
}

func parseColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{}, nil
	}
	return field.ParseColor(s)
}

// ///////////////////////////////////////////////
// Accessors
// ///////////////////////////////////////////////

// Table builds the field table. Call Validate first; invalid fields are
// left out.
func (c *Config) Table() field.Table {
	t := make(field.Table, len(c.Fields))
	for id, fc := range c.Fields {
		spec, err := fc.Spec(id)
		if err != nil {
			continue
		}
		t[id] = spec
	}
	return t
}

// Resolver builds the font resolver for the [fonts] section.
func (c *Config) Resolver(logger *slog.Logger) *text.Resolver {
	paths := make(map[string]string, len(c.Fonts.Paths))
	for fam, p := range c.Fonts.Paths {
		paths[fam] = c.Path(p)
	}
	dirs := make([]string, len(c.Fonts.Dirs))
	for i, d := range c.Fonts.Dirs {
		dirs[i] = c.Path(d)
	}
	return &text.Resolver{
		Paths:       paths,
		Dirs:        dirs,
		SystemPaths: c.Fonts.SystemPaths,
		SystemFonts: c.Fonts.SystemFonts,
		CacheDir:    c.Fonts.CacheDir,
		Logger:      logger,
	}
}

// TemplatePath returns the template path resolved against the
// configuration directory.
func (c *Config) TemplatePath() string { return c.Path(c.Template) }

// Path resolves p against the configuration directory. Absolute and
// empty paths are returned unchanged.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() imageio.Format {
	f, err := imageio.ParseFormat(c.Output.Format)
	if err != nil {
		return imageio.PNG
	}
	return f
}
