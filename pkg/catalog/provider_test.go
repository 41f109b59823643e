package catalog_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-lumio/internal/catalog/loader"
	"github.com/goliatone/go-lumio/internal/catalog/parser"
	"github.com/goliatone/go-lumio/pkg/catalog"
	"github.com/goliatone/go-lumio/pkg/pricing"
)

func newProvider(files fstest.MapFS, src catalog.Source) *catalog.Provider {
	return catalog.NewProvider(
		loader.New(catalog.NewLoaderOptions(catalog.WithFileSystem(files))),
		parser.New(catalog.NewParserOptions()),
		src,
	)
}

func TestProvider_LiveCatalog(t *testing.T) {
	files := fstest.MapFS{
		"catalog.yaml": {Data: []byte("products:\n  - id: team\n    title: Team\n    price: 500\n")},
	}

	res := newProvider(files, catalog.SourceFromFS("catalog.yaml")).Resolve(context.Background())
	if res.UsingFallback || res.Reason != nil {
		t.Fatalf("did not expect fallback: %v", res.Reason)
	}
	if res.Catalog.Len() != 1 || res.Catalog.Packages[0].ID != "team" {
		t.Fatalf("unexpected catalog %+v", res.Catalog)
	}

	quote, err := res.Calculator().Quote("team", 2)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.UsingFallback || quote.Result.Amount != pricing.Units(700) {
		t.Fatalf("unexpected quote %+v", quote)
	}
}

func TestProvider_FallsBack(t *testing.T) {
	files := fstest.MapFS{
		"empty.yaml":  {Data: []byte("products: []\n")},
		"broken.json": {Data: []byte(`{"products": [{"id": "x"}]}`)},
	}

	cases := []struct {
		name      string
		src       catalog.Source
		wantError error
	}{
		{name: "no source", src: nil, wantError: catalog.ErrNoSource},
		{name: "missing file", src: catalog.SourceFromFS("missing.json")},
		{name: "empty catalog", src: catalog.SourceFromFS("empty.yaml")},
		{name: "invalid format", src: catalog.SourceFromFS("broken.json"), wantError: pricing.ErrCatalogFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := newProvider(files, tc.src).Resolve(context.Background())
			if !res.UsingFallback {
				t.Fatalf("expected fallback")
			}
			if res.Reason == nil {
				t.Fatalf("expected a reason")
			}
			if tc.wantError != nil && !errors.Is(res.Reason, tc.wantError) {
				t.Fatalf("expected %v, got %v", tc.wantError, res.Reason)
			}

			calc := res.Calculator()
			def, err := calc.DefaultPackage()
			if err != nil {
				t.Fatalf("default package: %v", err)
			}
			if def.ID != pricing.FallbackCatalog().Sorted()[0].ID {
				t.Fatalf("expected first fallback package, got %q", def.ID)
			}
			quote, err := calc.Quote("", 1)
			if err != nil {
				t.Fatalf("quote: %v", err)
			}
			if !quote.UsingFallback {
				t.Fatalf("expected quote to be flagged as fallback")
			}
		})
	}
}

func TestProvider_CustomFallback(t *testing.T) {
	fallback := pricing.Catalog{Packages: []pricing.Package{{ID: "solo", Name: "Solo", BasePrice: pricing.Units(10)}}}
	p := catalog.NewProvider(nil, nil, nil, catalog.WithFallbackCatalog(fallback))

	res := p.Resolve(context.Background())
	if !res.UsingFallback || res.Catalog.Packages[0].ID != "solo" {
		t.Fatalf("unexpected resolution %+v", res)
	}
	if _, err := res.Calculator().Quote("solo", 1); err != nil {
		t.Fatalf("expected custom fallback to be quoted: %v", err)
	}
}

func TestProvider_BuiltinFallbackFollowsRule(t *testing.T) {
	rule := pricing.DefaultRule()
	rule.CustomQuoteThreshold = 80

	res := catalog.NewProvider(nil, nil, nil).Resolve(context.Background())
	calc := res.Calculator(pricing.WithRule(rule))
	if !calc.UsingFallback() {
		t.Fatalf("expected fallback flag")
	}
	variant, err := calc.Variant("premium", 60)
	if err != nil {
		t.Fatalf("variant: %v", err)
	}
	if variant.ID != "premium-users-60" {
		t.Fatalf("unexpected variant %+v", variant)
	}
}

func TestParseSource(t *testing.T) {
	src, err := catalog.ParseSource("https://shop.example.com/catalog.json")
	if err != nil || src.Kind() != catalog.SourceKindURL {
		t.Fatalf("expected url source, got %v (%v)", src, err)
	}
	src, err = catalog.ParseSource("./data/catalog.yaml")
	if err != nil || src.Kind() != catalog.SourceKindFile || src.Location() != "data/catalog.yaml" {
		t.Fatalf("expected file source, got %v (%v)", src, err)
	}
	src, err = catalog.ParseSource("  ")
	if err != nil || src != nil {
		t.Fatalf("expected nil source for blank input")
	}
	if _, err := catalog.ParseSource("https://exa mple.com"); err == nil {
		t.Fatalf("expected error for invalid url")
	}
}
