package brand

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-lumio/pkg/render"
)

// Token names read from palette manifests.
const (
	TokenPrimary   = "primary"
	TokenSecondary = "secondary"
)

var (
	// ErrPaletteNotFound is returned when Select cannot find the palette.
	ErrPaletteNotFound = errors.New("brand: palette not found")
	// ErrVariantNotFound is returned when the palette lacks the variant.
	ErrVariantNotFound = errors.New("brand: palette variant not found")
)

// Store holds palette manifests keyed by name.
type Store struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*Store)(nil)

// NewStore constructs an empty palette store.
func NewStore() *Store {
	return &Store{manifests: make(map[string]*theme.Manifest)}
}

// Register adds a manifest. The first registered manifest becomes the
// fallback used when Select receives an empty name.
func (s *Store) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return errors.New("brand: manifest is required")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return errors.New("brand: manifest name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.manifests[name]; exists {
		return fmt.Errorf("brand: palette %q already registered", name)
	}
	s.manifests[name] = manifest
	if s.fallback == "" {
		s.fallback = name
	}
	return nil
}

// Names returns the registered palette names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Select implements theme.ThemeSelector. An empty name selects the fallback
// palette; an empty variant selects the base tokens.
func (s *Store) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil {
		return nil, ErrPaletteNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPaletteNotFound, name)
	}

	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q/%q", ErrVariantNotFound, name, variant)
		}
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// Resolve selects a palette and flattens its tokens into a render.Palette.
func (s *Store) Resolve(name, variant string) (render.Palette, error) {
	selection, err := s.Select(name, variant)
	if err != nil {
		return render.Palette{}, err
	}
	return PaletteFromSelection(selection), nil
}

// PaletteFromSelection merges base tokens with the selected variant's
// overrides.
func PaletteFromSelection(selection *theme.Selection) render.Palette {
	if selection == nil || selection.Manifest == nil {
		return render.Palette{}
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if selection.Variant != "" {
		if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				tokens[key] = value
			}
		}
	}
	return render.Palette{
		Primary:   strings.TrimSpace(tokens[TokenPrimary]),
		Secondary: strings.TrimSpace(tokens[TokenSecondary]),
	}
}
