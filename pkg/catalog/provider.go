package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-lumio/pkg/pricing"
)

// ErrNoSource reports that no live catalog source is configured.
var ErrNoSource = errors.New("catalog: no source configured")

// Resolution is the outcome of resolving the live catalog. Reason holds the
// load or parse error that triggered the fallback, if any.
type Resolution struct {
	Catalog       pricing.Catalog
	UsingFallback bool
	Reason        error

	builtin bool
}

// Calculator builds a calculator over the resolved catalog, carrying the
// fallback flag. The built-in fallback is rebuilt for the calculator's rule.
func (r Resolution) Calculator(options ...pricing.CalculatorOption) *pricing.Calculator {
	options = append([]pricing.CalculatorOption{pricing.WithFallback(r.UsingFallback)}, options...)
	if r.builtin {
		return pricing.NewCalculator(pricing.Catalog{}, options...)
	}
	return pricing.NewCalculator(r.Catalog, options...)
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithLogger sets the logger used to report fallbacks.
func WithLogger(logger zerolog.Logger) ProviderOption {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithFallbackCatalog replaces pricing.FallbackCatalog.
func WithFallbackCatalog(fallback pricing.Catalog) ProviderOption {
	return func(p *Provider) {
		p.fallback = func() pricing.Catalog { return fallback }
		p.customFallback = true
	}
}

// Provider loads and parses the live catalog and never fails: any problem
// resolves to the fallback catalog with the reason attached.
type Provider struct {
	loader   Loader
	parser   Parser
	source   Source
	logger   zerolog.Logger
	fallback func() pricing.Catalog

	customFallback bool
}

// NewProvider wires a loader and parser to a source. A nil source always
// resolves to the fallback catalog.
func NewProvider(loader Loader, parser Parser, source Source, options ...ProviderOption) *Provider {
	p := &Provider{
		loader:   loader,
		parser:   parser,
		source:   source,
		logger:   zerolog.Nop(),
		fallback: pricing.FallbackCatalog,
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Source returns the configured source, which may be nil.
func (p *Provider) Source() Source {
	return p.source
}

// Resolve loads the live catalog, falling back when it cannot be loaded,
// fails to parse or has no packages.
func (p *Provider) Resolve(ctx context.Context) Resolution {
	live, err := p.load(ctx)
	if err == nil && live.Len() > 0 {
		p.logger.Debug().
			Str("source", p.source.Location()).
			Int("packages", live.Len()).
			Msg("catalog resolved")
		return Resolution{Catalog: live}
	}
	if err == nil {
		err = fmt.Errorf("catalog: %s has no packages", p.source.Location())
	}

	event := p.logger.Warn().Err(err)
	if p.source != nil {
		event = event.Str("source", p.source.Location())
	}
	event.Msg("using fallback catalog")

	return Resolution{
		Catalog:       p.fallback(),
		UsingFallback: true,
		Reason:        err,
		builtin:       !p.customFallback,
	}
}

func (p *Provider) load(ctx context.Context) (pricing.Catalog, error) {
	if p.source == nil {
		return pricing.Catalog{}, ErrNoSource
	}
	if p.loader == nil || p.parser == nil {
		return pricing.Catalog{}, errors.New("catalog: loader and parser are required")
	}
	doc, err := p.loader.Load(ctx, p.source)
	if err != nil {
		return pricing.Catalog{}, fmt.Errorf("catalog: load %s: %w", p.source.Location(), err)
	}
	parsed, err := p.parser.Parse(ctx, doc)
	if err != nil {
		return pricing.Catalog{}, fmt.Errorf("catalog: parse %s: %w", p.source.Location(), err)
	}
	return parsed, nil
}
