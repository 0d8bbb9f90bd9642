// Command idstamp renders one identity document from a layout
// configuration and a record file.
//
// Usage:
//
//	idstamp -config layout.toml -record person.toml [-photo face.jpg] -out doc.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gogpu/idstamp"
	"github.com/gogpu/idstamp/config"
	"github.com/gogpu/idstamp/internal/imageio"
	"github.com/gogpu/idstamp/internal/logger"
	"github.com/gogpu/idstamp/mrz"
	"github.com/gogpu/idstamp/photo"
	"github.com/gogpu/idstamp/record"
	"github.com/gogpu/idstamp/text"
)

type options struct {
	config       string
	record       string
	photo        string
	out          string
	overlay      bool
	logLevel     string
	randomDigits bool
	now          func() time.Time
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "idstamp.toml", "layout configuration file")
	flag.StringVar(&opts.record, "record", "", "record file (TOML)")
	flag.StringVar(&opts.photo, "photo", "", "portrait image")
	flag.StringVar(&opts.out, "out", "document.png", "output image; the extension selects PNG or JPEG")
	flag.BoolVar(&opts.overlay, "overlay", false, "draw field rectangles over the result")
	flag.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	flag.BoolVar(&opts.randomDigits, "random-check-digits", false, "use random MRZ check digits instead of ICAO 9303")
	flag.Parse()
	opts.now = time.Now

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "idstamp:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stderr io.Writer) error {
	if opts.record == "" {
		return errors.New("-record is required")
	}
	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log, closer := logger.New(stderr, cfg.Path(cfg.Log.File), logger.ParseLevel(level), cfg.Log.MaxSizeMB)
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	idstamp.SetLogger(log)
	defer idstamp.SetLogger(nil)

	fonts := text.NewFontCache(cfg.Resolver(log), text.WithDPI(cfg.DPI), text.WithLogger(log))
	if len(cfg.Fonts.WarmFamilies) > 0 {
		n := fonts.Warm(cfg.Fonts.WarmFamilies, cfg.Fonts.WarmSizes)
		log.Debug("fonts warmed", "faces", n)
	}

	tmpl, err := idstamp.LoadTemplate(cfg.TemplatePath())
	if err != nil {
		return err
	}

	copts := []idstamp.Option{
		idstamp.WithFallbackFamily(cfg.Fonts.Fallback),
		idstamp.WithOverlay(cfg.Output.Overlay || opts.overlay),
		idstamp.WithLogger(log),
	}
	if len(cfg.Fonts.Signature) > 0 {
		copts = append(copts, idstamp.WithSignatureFonts(cfg.Fonts.Signature...))
	}
	comp := idstamp.NewCompositor(tmpl, fonts, cfg.Table(), copts...)

	rec, err := record.Load(opts.record)
	if err != nil {
		return err
	}
	if rec.Issued.IsZero() {
		rec.Issued = opts.now()
	}

	enc := mrz.Encoder{}
	if opts.randomDigits {
		enc.CheckDigits = mrz.NewRandom(nil)
	}
	values, err := record.Values(rec, enc)
	var warn *mrz.FormatWarning
	switch {
	case errors.As(err, &warn):
		log.Warn("mrz line 2 replaced", "reason", warn.Reason)
	case err != nil:
		return err
	}

	if opts.photo != "" {
		img, err := preparePhoto(ctx, cfg, comp, opts.photo, log)
		if err != nil {
			return err
		}
		values[record.FieldPhoto] = idstamp.Image(img)
	}

	out, err := comp.RenderMap(values)
	if err != nil {
		return err
	}

	if filepath.Ext(opts.out) == "" {
		opts.out += "." + cfg.OutputFormat().String()
	}
	if err := idstamp.Save(opts.out, out, cfg.Output.Quality); err != nil {
		return err
	}
	log.Info("document written", "path", opts.out, "fields", len(values))
	return nil
}

// preparePhoto loads the portrait and runs it through the configured
// services. The slot size comes from the photo field rectangle when set.
func preparePhoto(ctx context.Context, cfg *config.Config, comp *idstamp.Compositor, path string, log *slog.Logger) (*image.NRGBA, error) {
	src, err := imageio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load photo: %w", err)
	}

	size := image.Pt(cfg.Photo.Width, cfg.Photo.Height)
	if spec, ok := comp.Specs().Get(record.FieldPhoto); ok && !spec.Rect.Bounds().Empty() {
		size = spec.Rect.Bounds().Size()
	}

	limit := photo.Limit(cfg.Photo.Concurrency)
	popts := photo.Options{Logger: log}
	if cfg.Photo.SegmentURL != "" {
		popts.Segmenter = limit.Segmenter(&photo.RemoteSegmenter{URL: cfg.Photo.SegmentURL})
	}
	if cfg.Photo.LandmarkURL != "" {
		popts.Detector = limit.Detector(&photo.RemoteDetector{URL: cfg.Photo.LandmarkURL})
	}
	return photo.Prepare(ctx, src, size, popts)
}
