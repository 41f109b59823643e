package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-lumio/pkg/brand"
	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/render"
	"github.com/goliatone/go-lumio/pkg/renderers/email"
	"github.com/goliatone/go-lumio/pkg/renderers/text"
)

const defaultRendererName = email.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithPalettes registers a go-theme selector used to fill colors the company
// leaves unset. brand.Store is the built-in implementation.
func WithPalettes(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.palettes = selector
	}
}

// WithTranslator sets the translator used when a request carries none.
func WithTranslator(translator render.Translator) Option {
	return func(o *Orchestrator) {
		o.translator = translator
	}
}

// WithLocale sets the label locale used when a request carries none.
func WithLocale(locale string) Option {
	return func(o *Orchestrator) {
		o.locale = strings.TrimSpace(locale)
	}
}

// WithIconBaseURL sets the icon base used when a request carries none.
func WithIconBaseURL(base string) Option {
	return func(o *Orchestrator) {
		o.iconBaseURL = strings.TrimSpace(base)
	}
}

// WithTransformer registers a Transformer that can rewrite the signature
// before it is rendered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger sets the logger used for degraded-path warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the full pipeline from signature inputs to rendered
// output. It applies sensible defaults (email renderer, embedded templates)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	palettes        theme.ThemeSelector
	translator      render.Translator
	locale          string
	iconBaseURL     string
	transformer     Transformer
	logger          zerolog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs for one render.
type Request struct {
	Signature model.Signature

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Locale selects label translations. It overrides RenderOptions.Locale
	// when set.
	Locale string

	// RenderOptions carries per-request overrides. An explicit palette here
	// wins over the company's named palette.
	RenderOptions render.RenderOptions
}

// Result is the rendered output plus the decisions taken on the way.
type Result struct {
	Body        []byte
	ContentType string
	Renderer    string
	Variant     model.TemplateID
	// VariantFellBack reports that the requested variant was not recognised
	// and the default layout was used instead.
	VariantFellBack bool
	Palette         render.Palette
}

// Generate renders req and returns only the output bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

// Render executes the transform → variant → palette → renderer sequence.
// Unknown variants and missing palettes degrade to defaults; only renderer
// lookup and template failures are returned as errors.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	sig := req.Signature
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &sig); err != nil {
			return Result{}, fmt.Errorf("orchestrator: transform signature: %w", err)
		}
	}

	variant, fellBack := o.resolveVariant(sig.Variant)
	sig.Variant = variant

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	opts := req.RenderOptions
	if req.Locale != "" {
		opts.Locale = req.Locale
	}
	if opts.Locale == "" {
		opts.Locale = o.locale
	}
	if opts.Translator == nil {
		opts.Translator = o.translator
	}
	if opts.IconBaseURL == "" {
		opts.IconBaseURL = o.iconBaseURL
	}
	if opts.Palette == (render.Palette{}) {
		opts.Palette = o.resolvePalette(sig.Company)
	}

	body, err := renderer.Render(ctx, sig, opts)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return Result{
		Body:            body,
		ContentType:     renderer.ContentType(),
		Renderer:        renderer.Name(),
		Variant:         variant,
		VariantFellBack: fellBack,
		Palette:         opts.Palette,
	}, nil
}

// Registry exposes the renderer registry, e.g. to list available renderers.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveVariant(raw model.TemplateID) (model.TemplateID, bool) {
	if strings.TrimSpace(string(raw)) == "" {
		return model.DefaultTemplateID, false
	}
	variant, fellBack := model.ResolveTemplateID(string(raw))
	if fellBack {
		o.logger.Warn().
			Str("variant", string(raw)).
			Str("fallback", variant.String()).
			Msg("unrecognized signature variant")
	}
	return variant, fellBack
}

func (o *Orchestrator) resolvePalette(company model.Company) render.Palette {
	if o.palettes == nil {
		return render.Palette{}
	}
	if strings.TrimSpace(company.PrimaryColor) != "" && strings.TrimSpace(company.SecondaryColor) != "" {
		return render.Palette{}
	}
	selection, err := o.palettes.Select(company.Palette, company.PaletteVariant)
	if err != nil {
		o.logger.Warn().
			Err(err).
			Str("palette", company.Palette).
			Str("palette_variant", company.PaletteVariant).
			Msg("palette unavailable, using default colors")
		return render.Palette{}
	}
	return brand.PaletteFromSelection(selection)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err = o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := email.New(email.WithIconBaseURL(o.iconBaseURL))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(text.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
