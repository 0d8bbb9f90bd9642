package text

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-text/typesetting/fontscan"
)

// fontGlob matches every font file below a directory.
const fontGlob = "**/*.{ttf,otf,ttc,TTF,OTF,TTC}"

// DefaultSystemPaths lists well-known install locations per family. Arial is
// a hard requirement of most layouts and is never substituted.
var DefaultSystemPaths = map[string][]string{
	"Arial": {
		"Arial.ttf",
		"arial.ttf",
		"/usr/share/fonts/truetype/msttcorefonts/Arial.ttf",
		"/usr/share/fonts/truetype/msttcorefonts/arial.ttf",
		"/usr/share/fonts/TTF/Arial.ttf",
		"/usr/share/fonts/TTF/arial.ttf",
	},
}

// Resolver turns a family name into an ordered list of candidate font paths.
//
// The zero value only tries the name itself and its variations. Resolver is
// safe for concurrent use once configured.
type Resolver struct {
	// Paths maps a family to an explicit font file.
	Paths map[string]string
	// Dirs are searched in order, first directly and then recursively.
	Dirs []string
	// SystemPaths lists extra per-family locations tried after the
	// configured directories. Nil means DefaultSystemPaths.
	SystemPaths map[string][]string
	// Home overrides the user home directory used for ~/.fonts.
	Home string
	// SystemFonts enables a go-text fontscan lookup of installed fonts as the
	// last candidate. The first lookup scans the system and may be slow.
	SystemFonts bool
	// CacheDir stores the fontscan index. Empty means os.UserCacheDir.
	CacheDir string
	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger

	indexOnce sync.Once
	index     map[string]string

	scanOnce sync.Once
	scan     *fontscan.FontMap
}

// Candidates returns the candidate paths for family in resolution order,
// without duplicates. It does not check that the files exist.
func (r *Resolver) Candidates(family string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	add(r.Paths[family])

	names := fileNames(family)
	for _, dir := range r.Dirs {
		for _, n := range names {
			add(filepath.Join(dir, n))
		}
	}

	idx := r.dirIndex()
	for _, n := range names {
		add(idx[strings.ToLower(n)])
	}

	for _, v := range nameVariations(family) {
		add(v)
	}

	if home := r.home(); home != "" {
		add(filepath.Join(home, ".fonts", family))
	}

	sys := r.SystemPaths
	if sys == nil {
		sys = DefaultSystemPaths
	}
	for _, p := range sys[family] {
		add(p)
	}

	if r.SystemFonts {
		add(r.systemLookup(family))
	}
	return out
}

func (r *Resolver) home() string {
	if r.Home != "" {
		return r.Home
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return h
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// dirIndex maps lower-cased file names and stems to the first matching path
// found below the configured directories.
func (r *Resolver) dirIndex() map[string]string {
	r.indexOnce.Do(func() {
		r.index = make(map[string]string)
		for _, dir := range r.Dirs {
			matches, err := doublestar.Glob(os.DirFS(dir), fontGlob, doublestar.WithFilesOnly())
			if err != nil {
				r.logger().Debug("text: font dir index failed", "dir", dir, "err", err)
				continue
			}
			for _, m := range matches {
				full := filepath.Join(dir, filepath.FromSlash(m))
				base := strings.ToLower(path.Base(m))
				stem := strings.TrimSuffix(base, path.Ext(base))
				for _, k := range []string{base, stem} {
					if _, ok := r.index[k]; !ok {
						r.index[k] = full
					}
				}
			}
		}
	})
	return r.index
}

func (r *Resolver) systemLookup(family string) string {
	r.scanOnce.Do(func() {
		fm := fontscan.NewFontMap(slogPrintf{r.logger()})
		dir := r.CacheDir
		if dir == "" {
			var err error
			if dir, err = os.UserCacheDir(); err != nil {
				r.logger().Debug("text: no font cache dir", "err", err)
				return
			}
		}
		if err := fm.UseSystemFonts(dir); err != nil {
			r.logger().Debug("text: system font scan failed", "err", err)
			return
		}
		r.scan = fm
	})
	if r.scan == nil {
		return ""
	}
	loc, ok := r.scan.FindSystemFont(stripFontExt(family))
	if !ok {
		return ""
	}
	return loc.File
}

// fileNames returns family and, when it has no font extension, the family
// with ".ttf" appended.
func fileNames(family string) []string {
	if stripFontExt(family) != family {
		return []string{family}
	}
	return []string{family, family + ".ttf"}
}

func stripFontExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf", ".ttc":
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

// nameVariations returns name as-is, without spaces, and with spaces
// replaced by '-' and '_'.
func nameVariations(name string) []string {
	return []string{
		name,
		strings.ReplaceAll(name, " ", ""),
		strings.ReplaceAll(name, " ", "-"),
		strings.ReplaceAll(name, " ", "_"),
	}
}

// slogPrintf adapts slog to the Printf logger fontscan expects.
type slogPrintf struct{ l *slog.Logger }

func (p slogPrintf) Printf(format string, args ...any) {
	p.l.Debug("text: fontscan", "msg", strings.TrimSpace(fmt.Sprintf(format, args...)))
}
