package asset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleCatalog = `
sources:
  moon:
    path: assets/moon.svg
    kind: svg
    tint: "#d0d0e0"
    width: 48
    height: 48
  rock:
    path: assets/rock.png
    kind: png
    width: 24
    height: 16
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assets.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	c, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}

	moon, err := c.Resolve("moon")
	if err != nil {
		t.Fatalf("Resolve moon: %v", err)
	}
	if moon.Name != "moon" || moon.Path != "assets/moon.svg" || moon.W != 48 {
		t.Errorf("moon = %+v, want name/path/width from the file", moon)
	}
	if _, ok := moon.TintColor(); !ok {
		t.Error("moon tint did not parse")
	}

	rock, _ := c.Resolve("rock")
	if _, ok := rock.TintColor(); ok {
		t.Error("rock has no tint but TintColor reported one")
	}
}

func TestLoadRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing path", "sources:\n  x:\n    kind: svg\n"},
		{"bad kind", "sources:\n  x:\n    path: a.bmp\n    kind: bmp\n"},
		{"bad tint", "sources:\n  x:\n    path: a.svg\n    tint: \"notacolor\"\n"},
		{"negative size", "sources:\n  x:\n    path: a.svg\n    width: -4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeCatalog(t, tt.content)); err == nil {
				t.Error("Load accepted an invalid catalog")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("Load accepted a missing file")
	}
}

func TestResolveUnknown(t *testing.T) {
	c := DefaultCatalog()
	if _, err := c.Resolve("nothing"); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("err = %v, want ErrUnknownSource", err)
	}
}

func TestNamesAreSorted(t *testing.T) {
	c := DefaultCatalog()
	names := c.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names not sorted: %v", names)
		}
	}
}
