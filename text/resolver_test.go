package text

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolverCandidateOrder(t *testing.T) {
	base := t.TempDir()
	extra := t.TempDir()
	home := t.TempDir()

	r := &Resolver{
		Paths:       map[string]string{"OCR B": "/explicit/ocrb.ttf"},
		Dirs:        []string{base, extra},
		Home:        home,
		SystemPaths: map[string][]string{"OCR B": {"/usr/share/fonts/ocrb.ttf"}},
	}

	got := r.Candidates("OCR B")
	want := []string{
		"/explicit/ocrb.ttf",
		filepath.Join(base, "OCR B"),
		filepath.Join(base, "OCR B.ttf"),
		filepath.Join(extra, "OCR B"),
		filepath.Join(extra, "OCR B.ttf"),
		"OCR B",
		"OCRB",
		"OCR-B",
		"OCR_B",
		filepath.Join(home, ".fonts", "OCR B"),
		"/usr/share/fonts/ocrb.ttf",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Candidates() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolverRecursiveIndex(t *testing.T) {
	dir := t.TempDir()
	nested := writeFont(t, dir, filepath.Join("handwriting", "sub", "Brush Script.TTF"))

	r := &Resolver{Dirs: []string{dir}, Home: t.TempDir()}

	for _, family := range []string{"Brush Script", "brush script.ttf"} {
		if got := r.Candidates(family); !slices.Contains(got, nested) {
			t.Errorf("Candidates(%q) = %v, want it to contain %s", family, got, nested)
		}
	}
}

func TestResolverDefaultArialPaths(t *testing.T) {
	r := &Resolver{Home: t.TempDir()}
	got := r.Candidates("Arial")

	for _, p := range DefaultSystemPaths["Arial"] {
		if !slices.Contains(got, p) {
			t.Errorf("Candidates(Arial) missing %s", p)
		}
	}
	if got[0] != "Arial" {
		t.Errorf("first candidate = %q, want the bare family name", got[0])
	}
}

func TestResolverNoDuplicates(t *testing.T) {
	r := &Resolver{Home: t.TempDir()}
	got := r.Candidates("Plain")

	seen := make(map[string]bool)
	for _, p := range got {
		if seen[p] {
			t.Errorf("duplicate candidate %q in %v", p, got)
		}
		seen[p] = true
	}
}

func TestResolverWithFontCache(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Pasaport Numbers Front-Regular.ttf")

	c := NewFontCache(&Resolver{Dirs: []string{dir}, Home: t.TempDir()})
	f, err := c.Get("Pasaport Numbers Front-Regular.ttf", 95)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := filepath.Join(dir, "Pasaport Numbers Front-Regular.ttf")
	if f.Source().Path() != want {
		t.Errorf("Path() = %q, want %q", f.Source().Path(), want)
	}
}

func TestNameVariations(t *testing.T) {
	got := nameVariations("Brush Script MT")
	want := []string{"Brush Script MT", "BrushScriptMT", "Brush-Script-MT", "Brush_Script_MT"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nameVariations mismatch (-want +got):\n%s", diff)
	}
}
