package email

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/render"
	rendertemplate "github.com/goliatone/go-lumio/pkg/render/template"
	gotemplate "github.com/goliatone/go-lumio/pkg/render/template/gotemplate"
)

const (
	Name          = "email"
	documentPath  = "templates/document.tmpl"
	contentTypeHT = "text/html; charset=utf-8"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	iconBaseURL      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
// Layout files are not checked against the bundle in that case.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithIconBaseURL sets the absolute base URL for social icon images.
func WithIconBaseURL(base string) Option {
	return func(cfg *config) {
		cfg.iconBaseURL = strings.TrimSpace(base)
	}
}

// Renderer produces table-based, inline-styled HTML signatures that survive
// being pasted into mail clients.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	iconBaseURL string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the email renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		if err := checkLayouts(cfg.templateFS); err != nil {
			return nil, err
		}
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("email renderer: configure template renderer: %w", err)
		}
		renderer = engine
	} else if err := checkLayouts(nil); err != nil {
		return nil, err
	}

	return &Renderer{templates: renderer, iconBaseURL: cfg.iconBaseURL}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return contentTypeHT
}

// Render produces the signature fragment for sig. Unknown variants render
// with the default layout.
func (r *Renderer) Render(ctx context.Context, sig model.Signature, opts render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("email renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	variant, _ := model.ResolveTemplateID(string(sig.Variant))
	layout, _ := LayoutFor(variant)

	result, err := r.templates.RenderTemplate(layout.Template, map[string]any{
		"sig": buildView(sig, layout, variant, opts, r.iconBaseURL),
	})
	if err != nil {
		return nil, fmt.Errorf("email renderer: render %s layout: %w", layout.Name, err)
	}
	return []byte(strings.TrimSpace(result) + "\n"), nil
}

// WrapDocument embeds a rendered fragment in a minimal standalone HTML page,
// used for previews and file exports.
func (r *Renderer) WrapDocument(title string, fragment []byte) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("email renderer: template renderer is nil")
	}
	result, err := r.templates.RenderTemplate(documentPath, map[string]any{
		"title":     strings.TrimSpace(title),
		"signature": string(fragment),
	})
	if err != nil {
		return nil, fmt.Errorf("email renderer: render document: %w", err)
	}
	return []byte(result), nil
}
