// Package lumio renders inbox-safe email signatures and quotes subscription
// packages. The root package re-exports the common entry points; the pkg/
// tree holds the building blocks.
package lumio

import (
	"context"

	"github.com/goliatone/go-lumio/pkg/catalog"
	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/orchestrator"
	"github.com/goliatone/go-lumio/pkg/pricing"
	"github.com/goliatone/go-lumio/pkg/render"
)

// Signature aliases model.Signature for callers that only import the root
// package.
type Signature = model.Signature

// RenderOptions describes per-request overrides such as locale and palette.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateSignature renders sig with the named renderer ("email" when blank).
// It is the simplest entry point for callers that just want HTML output.
func GenerateSignature(ctx context.Context, sig Signature, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Signature: sig,
		Renderer:  rendererName,
	})
}

// Quote resolves the catalog at source (falling back to the built-in catalog)
// and prices packageID for users.
func Quote(ctx context.Context, source catalog.Source, packageID string, users int) (pricing.Quote, error) {
	resolution := NewCatalogProvider(source, nil).Resolve(ctx)
	return resolution.Calculator().Quote(packageID, users)
}
