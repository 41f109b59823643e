package pricing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/goliatone/go-lumio/pkg/pricing"
)

func TestCalculator_EmptyCatalogUsesFallback(t *testing.T) {
	calc := pricing.NewCalculator(pricing.Catalog{})
	if !calc.UsingFallback() {
		t.Fatalf("expected fallback flag")
	}

	quote, err := calc.Quote("", 5)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !quote.UsingFallback {
		t.Fatalf("expected quote to carry the fallback flag")
	}
	if quote.Package.ID != "starter" {
		t.Fatalf("expected first fallback package, got %q", quote.Package.ID)
	}
	if quote.Result.Amount != pricing.Units(950+100*5) {
		t.Fatalf("unexpected amount %s", quote.Result.Amount)
	}
	if quote.Variant == nil || quote.Variant.ID != "starter-users-5" {
		t.Fatalf("expected matching variant, got %+v", quote.Variant)
	}
}

func TestCalculator_FallbackVariantsFollowRule(t *testing.T) {
	rule := pricing.DefaultRule()
	rule.CustomQuoteThreshold = 80
	calc := pricing.NewCalculator(pricing.Catalog{}, pricing.WithRule(rule))

	quote, err := calc.Quote("essential", 60)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.Result.Amount != pricing.Units(1450+100*60) {
		t.Fatalf("unexpected amount %s", quote.Result.Amount)
	}
	if quote.Variant == nil || quote.Variant.ID != "essential-users-60" || quote.Variant.Price != quote.Result.Amount {
		t.Fatalf("expected matching variant, got %+v", quote.Variant)
	}

	custom, err := calc.Variant("essential", 81)
	if err != nil || custom.ID != "essential-custom" {
		t.Fatalf("expected custom variant above the threshold, got %+v, %v", custom, err)
	}

	flat := pricing.NewCalculator(pricing.Catalog{}, pricing.WithRule(pricing.FlatRule()))
	variant, err := flat.Variant("starter", 10)
	if err != nil || variant.Price != pricing.Units(950) {
		t.Fatalf("expected flat fallback variant price, got %+v, %v", variant, err)
	}
}

func TestCalculator_LiveCatalog(t *testing.T) {
	live := pricing.Catalog{Packages: []pricing.Package{
		{ID: "pro", Name: "Pro", BasePrice: pricing.Units(2000)},
		{ID: "team", Name: "Team", BasePrice: pricing.Units(500)},
	}}
	calc := pricing.NewCalculator(live, pricing.WithRule(pricing.FlatRule()))
	if calc.UsingFallback() {
		t.Fatalf("did not expect fallback")
	}

	def, err := calc.DefaultPackage()
	if err != nil {
		t.Fatalf("default package: %v", err)
	}
	if def.ID != "team" {
		t.Fatalf("expected cheapest package first, got %q", def.ID)
	}

	quote, err := calc.Quote("pro", 20)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.Result.Amount != pricing.Units(2000) || quote.Variant != nil {
		t.Fatalf("unexpected quote %+v", quote)
	}

	if _, err := calc.Variant("pro", 20); !errors.Is(err, pricing.ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
	if _, err := calc.Quote("missing", 1); !errors.Is(err, pricing.ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestCalculator_WithFallbackFlag(t *testing.T) {
	calc := pricing.NewCalculator(pricing.FallbackCatalog(), pricing.WithFallback(true))
	quote, err := calc.Quote("premium", 51)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !quote.UsingFallback || !quote.Result.IsCustomQuote() {
		t.Fatalf("unexpected quote %+v", quote)
	}
	if quote.Variant == nil || quote.Variant.ID != "premium-custom" {
		t.Fatalf("expected custom variant, got %+v", quote.Variant)
	}
}

func TestMoney(t *testing.T) {
	cases := map[string]pricing.Money{
		"1450":      pricing.Units(1450),
		"1450.5":    145050,
		"$1,450.00": pricing.Units(1450),
		".99":       99,
	}
	for raw, want := range cases {
		got, err := pricing.ParseMoney(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %d, got %d", raw, want, got)
		}
	}
	for _, raw := range []string{"", "abc", "1.234", "-5"} {
		if _, err := pricing.ParseMoney(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}

	if got := pricing.Units(2450).String(); got != "2450.00" {
		t.Fatalf("unexpected String %q", got)
	}
	if got := pricing.Units(2450).Display(); got != "$2,450" {
		t.Fatalf("unexpected Display %q", got)
	}
	if got := pricing.Money(123456789).Display(); got != "$1,234,567.89" {
		t.Fatalf("unexpected Display %q", got)
	}
	if got := pricing.Money(-250).Display(); got != "-$2.50" {
		t.Fatalf("unexpected negative Display %q", got)
	}
}

func TestMoney_MostNegativeValue(t *testing.T) {
	m := pricing.Money(math.MinInt64)
	if got := m.String(); got != "-92233720368547758.08" {
		t.Fatalf("unexpected String %q", got)
	}
	if got := m.Display(); got != "-$92,233,720,368,547,758.08" {
		t.Fatalf("unexpected Display %q", got)
	}
}
