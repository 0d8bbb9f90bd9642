package text

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// writeFont writes the Go Regular font to dir/name and returns the path.
func writeFont(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

// testFace returns a Go Regular face at px pixels.
func testFace(t *testing.T, px int) *Face {
	t.Helper()
	src, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource: %v", err)
	}
	f, err := src.Face("Go", px)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	return f
}

// memLoader serves fonts from memory and counts loads per path.
type memLoader struct {
	files map[string][]byte
	loads map[string]int
}

func newMemLoader(paths ...string) *memLoader {
	m := &memLoader{files: make(map[string][]byte), loads: make(map[string]int)}
	for i, p := range paths {
		data := goregular.TTF
		if i%2 == 1 {
			data = gobold.TTF
		}
		m.files[p] = data
	}
	return m
}

func (m *memLoader) load(path string) (*FontSource, error) {
	m.loads[path]++
	data, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return NewFontSource(data)
}

// staticCandidates returns a fixed candidate list per family.
type staticCandidates map[string][]string

func (s staticCandidates) Candidates(family string) []string { return s[family] }
