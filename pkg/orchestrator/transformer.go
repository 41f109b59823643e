package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lumio/pkg/model"
)

// Transformer mutates a signature before the variant and palette are
// resolved. Implementations can inject tenant defaults, hide blocks, or
// perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, signature *model.Signature) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, signature *model.Signature) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, signature *model.Signature) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, signature)
}

// Chain runs transformers in order and stops at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, signature *model.Signature) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, signature); err != nil {
				return err
			}
		}
		return nil
	})
}

// PresetTransformer applies declarative tenant defaults loaded from a YAML
// (or JSON) document:
//
//	default_variant: template-2
//	hide: [fax, banner]
//	company:
//	  name: Acme
//	  website: https://acme.io
//	  social_media:
//	    linkedin: https://linkedin.com/company/acme
//
// Company values only fill fields the signature leaves empty. Elements named
// in hide are always switched off.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	DefaultVariant string        `yaml:"default_variant"`
	Hide           []string      `yaml:"hide"`
	Company        model.Company `yaml:"company"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}

	if raw := strings.TrimSpace(document.DefaultVariant); raw != "" {
		id, err := model.ParseTemplateID(raw)
		if err != nil {
			return nil, fmt.Errorf("preset transformer: default_variant: %w", err)
		}
		document.DefaultVariant = id.String()
	}

	var probe model.ShowElements
	for _, name := range document.Hide {
		element := model.Element(strings.ToLower(strings.TrimSpace(name)))
		if !probe.Set(element, false) {
			return nil, fmt.Errorf("preset transformer: unknown element %q in hide", name)
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the preset onto the supplied signature.
func (t *PresetTransformer) Transform(ctx context.Context, signature *model.Signature) error {
	if signature == nil {
		return errors.New("preset transformer: signature is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if strings.TrimSpace(string(signature.Variant)) == "" && t.document.DefaultVariant != "" {
		signature.Variant = model.TemplateID(t.document.DefaultVariant)
	}

	applyCompanyDefaults(&signature.Company, t.document.Company)

	for _, name := range t.document.Hide {
		signature.Show.Set(model.Element(strings.ToLower(strings.TrimSpace(name))), false)
	}
	return nil
}

func applyCompanyDefaults(dst *model.Company, src model.Company) {
	fill(&dst.Name, src.Name)
	fill(&dst.PrimaryColor, src.PrimaryColor)
	fill(&dst.SecondaryColor, src.SecondaryColor)
	fill(&dst.Logo, src.Logo)
	fill(&dst.Icon, src.Icon)
	fill(&dst.Website, src.Website)
	fill(&dst.Address, src.Address)
	fill(&dst.Slogan, src.Slogan)
	fill(&dst.Banner, src.Banner)
	fill(&dst.Tagline, src.Tagline)
	fill(&dst.Disclaimer, src.Disclaimer)
	fill(&dst.Palette, src.Palette)
	fill(&dst.PaletteVariant, src.PaletteVariant)

	fill(&dst.SocialMedia.Facebook, src.SocialMedia.Facebook)
	fill(&dst.SocialMedia.Twitter, src.SocialMedia.Twitter)
	fill(&dst.SocialMedia.LinkedIn, src.SocialMedia.LinkedIn)
	fill(&dst.SocialMedia.Instagram, src.SocialMedia.Instagram)
	fill(&dst.SocialMedia.YouTube, src.SocialMedia.YouTube)
}

func fill(dst *string, value string) {
	if strings.TrimSpace(*dst) != "" {
		return
	}
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
