// Package asset resolves named texture source handles from a YAML catalog.
// The catalog only names sources; decoding the referenced files is the
// rendering layer's problem, not ours.
package asset

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	yaml "gopkg.in/yaml.v2"

	"github.com/bethropolis/cutout/internal/logger"
)

var (
	// ErrUnknownSource indicates a source name absent from the catalog.
	ErrUnknownSource = errors.New("unknown texture source")
)

// Source is one named texture source handle.
type Source struct {
	Name string  `yaml:"-"`
	Path string  `yaml:"path"`
	Kind string  `yaml:"kind"` // "svg" or "png"; empty defaults to svg
	Tint string  `yaml:"tint"` // Optional hex color applied on placement
	W    float64 `yaml:"width"`
	H    float64 `yaml:"height"`
}

// catalogFile is the on-disk shape.
type catalogFile struct {
	Sources map[string]Source `yaml:"sources"`
}

// Catalog holds the loaded sources.
type Catalog struct {
	sources map[string]Source
}

// Load reads a YAML catalog from path and validates it.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset catalog: %w", err)
	}
	defer f.Close()

	var file catalogFile
	if err := yaml.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse asset catalog %q: %w", path, err)
	}

	c := &Catalog{sources: make(map[string]Source, len(file.Sources))}
	for name, src := range file.Sources {
		src.Name = name
		if err := validate(src); err != nil {
			return nil, fmt.Errorf("asset catalog %q: source %q: %w", path, name, err)
		}
		c.sources[name] = src
	}
	logger.Infof("Asset catalog loaded: %d source(s) from %s", len(c.sources), path)
	return c, nil
}

// DefaultCatalog returns a built-in catalog so the editor works without a
// catalog file on disk.
func DefaultCatalog() *Catalog {
	sources := map[string]Source{
		"cloud":  {Name: "cloud", Path: "assets/cloud.svg", Kind: "svg", W: 96, H: 48},
		"sun":    {Name: "sun", Path: "assets/sun.svg", Kind: "svg", Tint: "#f5c542", W: 64, H: 64},
		"hill":   {Name: "hill", Path: "assets/hill.png", Kind: "png", Tint: "#4c9a2a", W: 256, H: 96},
		"sprite": {Name: "sprite", Path: "assets/sprite.png", Kind: "png", W: 32, H: 32},
	}
	return &Catalog{sources: sources}
}

// Resolve returns the source handle for a name.
func (c *Catalog) Resolve(name string) (Source, error) {
	src, ok := c.sources[name]
	if !ok {
		return Source{}, fmt.Errorf("resolve %q: %w", name, ErrUnknownSource)
	}
	return src, nil
}

// Names returns the catalog's source names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.sources))
	for name := range c.sources {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of sources.
func (c *Catalog) Len() int {
	return len(c.sources)
}

// TintColor parses the source's tint. ok is false when no tint is set.
func (s Source) TintColor() (colorful.Color, bool) {
	if s.Tint == "" {
		return colorful.Color{}, false
	}
	col, err := colorful.Hex(s.Tint)
	if err != nil {
		return colorful.Color{}, false
	}
	return col, true
}

func validate(src Source) error {
	if src.Path == "" {
		return errors.New("missing path")
	}
	switch strings.ToLower(src.Kind) {
	case "", "svg", "png":
	default:
		return fmt.Errorf("unsupported kind %q", src.Kind)
	}
	if src.Tint != "" {
		if _, err := colorful.Hex(src.Tint); err != nil {
			return fmt.Errorf("bad tint %q: %w", src.Tint, err)
		}
	}
	if src.W < 0 || src.H < 0 {
		return errors.New("negative size")
	}
	return nil
}
