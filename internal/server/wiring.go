package server

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-lumio/internal/catalog/loader"
	"github.com/goliatone/go-lumio/internal/catalog/parser"
	"github.com/goliatone/go-lumio/internal/config"
	"github.com/goliatone/go-lumio/pkg/brand"
	"github.com/goliatone/go-lumio/pkg/catalog"
	"github.com/goliatone/go-lumio/pkg/directory"
	"github.com/goliatone/go-lumio/pkg/orchestrator"
	"github.com/goliatone/go-lumio/pkg/pricing"
	"github.com/goliatone/go-lumio/pkg/widgets"
)

// FromConfig assembles the server dependencies described by cfg and builds
// the server.
func FromConfig(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	deps, err := BuildDeps(cfg, logger)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg.Server, deps)
}

// BuildDeps resolves palettes, preset, directory, widgets and catalog
// provider from cfg.
func BuildDeps(cfg config.Config, logger zerolog.Logger) (Deps, error) {
	palettes, err := brand.Default()
	if err != nil {
		return Deps{}, err
	}
	if path := cfg.Brand.PalettesFile; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Deps{}, fmt.Errorf("server: read palettes: %w", err)
		}
		if err := palettes.LoadYAML(data, path); err != nil {
			return Deps{}, err
		}
	}

	orchestratorOptions := []orchestrator.Option{
		orchestrator.WithPalettes(palettes),
		orchestrator.WithDefaultRenderer(cfg.Render.DefaultRenderer),
		orchestrator.WithIconBaseURL(cfg.Render.IconBaseURL),
		orchestrator.WithLocale(cfg.Render.Locale),
		orchestrator.WithLogger(logger.With().Str("component", "orchestrator").Logger()),
	}
	if path := cfg.Render.Preset; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Deps{}, fmt.Errorf("server: read preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return Deps{}, err
		}
		orchestratorOptions = append(orchestratorOptions, orchestrator.WithTransformer(preset))
	}

	dir, err := loadDirectory(cfg.Directory.File)
	if err != nil {
		return Deps{}, err
	}

	registry := widgets.NewRegistry()
	for _, wc := range cfg.Widgets {
		widget, err := widgets.NewScriptWidget(wc.ID, wc.Src, wc.Attributes)
		if err != nil {
			return Deps{}, err
		}
		if err := registry.Register(widget, wc.Priority); err != nil {
			return Deps{}, err
		}
	}

	source, err := catalog.ParseSource(cfg.Catalog.Source)
	if err != nil {
		return Deps{}, err
	}
	catalogLoader := loader.New(catalog.NewLoaderOptions(
		catalog.WithHTTPFallback(cfg.Catalog.Timeout),
		catalog.WithMaxBytes(cfg.Catalog.MaxBytes),
	))
	provider := catalog.NewProvider(
		catalogLoader,
		parser.New(catalog.NewParserOptions()),
		source,
		catalog.WithLogger(logger.With().Str("component", "catalog").Logger()),
	)

	return Deps{
		Orchestrator: orchestrator.New(orchestratorOptions...),
		Catalog:      provider,
		Pricing:      []pricing.CalculatorOption{pricing.WithRule(cfg.Catalog.Pricing.Rule())},
		Directory:    dir,
		Widgets:      registry,
		Logger:       logger,
	}, nil
}

func loadDirectory(path string) (*directory.Directory, error) {
	if path == "" {
		return directory.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server: read directory: %w", err)
	}
	return directory.Parse(data, path)
}
