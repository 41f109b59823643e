package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedVariant reports a template identifier outside the known set.
var ErrUnrecognizedVariant = errors.New("model: unrecognized template variant")

// TemplateID identifies a signature layout variant.
type TemplateID string

const (
	TemplateStandard TemplateID = "standard"
	TemplateMinimal  TemplateID = "minimal"
	TemplateAnimated TemplateID = "animated"
	Template1        TemplateID = "template-1"
	Template2        TemplateID = "template-2"
	Template3        TemplateID = "template-3"
	Template4        TemplateID = "template-4"
	Template5        TemplateID = "template-5"
	Template6        TemplateID = "template-6"
)

// DefaultTemplateID is used whenever a caller supplies an unknown identifier.
const DefaultTemplateID = TemplateStandard

// AllTemplateIDs returns the closed set of template identifiers in display
// order.
func AllTemplateIDs() []TemplateID {
	return []TemplateID{
		TemplateStandard,
		TemplateMinimal,
		TemplateAnimated,
		Template1,
		Template2,
		Template3,
		Template4,
		Template5,
		Template6,
	}
}

// Valid reports whether id belongs to the known set.
func (id TemplateID) Valid() bool {
	for _, candidate := range AllTemplateIDs() {
		if candidate == id {
			return true
		}
	}
	return false
}

func (id TemplateID) String() string {
	return string(id)
}

// ParseTemplateID normalises raw (case, whitespace, "template1" spelling) and
// returns ErrUnrecognizedVariant for identifiers outside the known set.
func ParseTemplateID(raw string) (TemplateID, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrUnrecognizedVariant)
	}
	if strings.HasPrefix(normalized, "template") && !strings.HasPrefix(normalized, "template-") {
		normalized = "template-" + strings.TrimPrefix(normalized, "template")
	}
	id := TemplateID(normalized)
	if !id.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedVariant, raw)
	}
	return id, nil
}

// ResolveTemplateID parses raw and falls back to DefaultTemplateID for
// unknown identifiers. The boolean reports whether the fallback was applied.
func ResolveTemplateID(raw string) (TemplateID, bool) {
	id, err := ParseTemplateID(raw)
	if err != nil {
		return DefaultTemplateID, true
	}
	return id, false
}
