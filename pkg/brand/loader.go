package brand

import (
	_ "embed"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

//go:embed palettes.yaml
var defaultPalettes []byte

type paletteDocument struct {
	Palettes []paletteEntry `yaml:"palettes"`
}

type paletteEntry struct {
	Name     string                  `yaml:"name"`
	Version  string                  `yaml:"version"`
	Tokens   map[string]string       `yaml:"tokens"`
	Variants map[string]variantEntry `yaml:"variants"`
}

type variantEntry struct {
	Tokens map[string]string `yaml:"tokens"`
}

// Default returns a store seeded with the built-in palettes.
func Default() (*Store, error) {
	store := NewStore()
	if err := store.LoadYAML(defaultPalettes, "palettes.yaml"); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile reads a palette document from fsys and registers its palettes.
func (s *Store) LoadFile(fsys fs.FS, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("brand: read %s: %w", path, err)
	}
	return s.LoadYAML(data, path)
}

// LoadYAML parses a palette document and registers every palette it lists.
func (s *Store) LoadYAML(data []byte, origin string) error {
	var doc paletteDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("brand: parse %s: %w", origin, err)
	}
	for _, entry := range doc.Palettes {
		if strings.TrimSpace(entry.Name) == "" {
			return fmt.Errorf("brand: %s defines a palette without a name", origin)
		}
		if err := s.Register(entry.manifest()); err != nil {
			return err
		}
	}
	return nil
}

func (e paletteEntry) manifest() *theme.Manifest {
	manifest := &theme.Manifest{
		Name:    strings.TrimSpace(e.Name),
		Version: e.Version,
		Tokens:  e.Tokens,
	}
	if len(e.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(e.Variants))
		for name, variant := range e.Variants {
			manifest.Variants[strings.TrimSpace(name)] = theme.Variant{Tokens: variant.Tokens}
		}
	}
	return manifest
}
