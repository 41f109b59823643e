package pricing_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lumio/pkg/pricing"
)

func TestComputeTotal_EssentialTenUsers(t *testing.T) {
	pkg := pricing.Package{ID: "essential", BasePrice: pricing.Units(1450)}

	got, err := pricing.ComputeTotal(pkg, 10, pricing.DefaultRule())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := pricing.Result{Kind: pricing.ResultAmount, Amount: pricing.Units(2450)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeTotal_Boundary(t *testing.T) {
	pkg := pricing.Package{ID: "essential", BasePrice: pricing.Units(1450)}

	at, err := pricing.ComputeTotal(pkg, 50, pricing.DefaultRule())
	if err != nil {
		t.Fatalf("compute 50: %v", err)
	}
	if at.Kind != pricing.ResultAmount || at.Amount != pricing.Units(1450+100*50) {
		t.Fatalf("unexpected result at 50: %+v", at)
	}

	above, err := pricing.ComputeTotal(pkg, 51, pricing.DefaultRule())
	if err != nil {
		t.Fatalf("compute 51: %v", err)
	}
	if !above.IsCustomQuote() || above.Amount != 0 {
		t.Fatalf("expected custom quote at 51, got %+v", above)
	}
}

func TestComputeTotal_FlatRule(t *testing.T) {
	pkg := pricing.Package{ID: "starter", BasePrice: pricing.Units(950)}

	got, err := pricing.ComputeTotal(pkg, 30, pricing.FlatRule())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got.Amount != pricing.Units(950) {
		t.Fatalf("expected flat price, got %s", got.Amount)
	}

	custom, err := pricing.ComputeTotal(pkg, 51, pricing.FlatRule())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !custom.IsCustomQuote() {
		t.Fatalf("expected custom quote above threshold for flat pricing")
	}
}

func TestComputeTotal_InvalidUserCount(t *testing.T) {
	for _, users := range []int{0, -3} {
		_, err := pricing.ComputeTotal(pricing.Package{ID: "starter"}, users, pricing.DefaultRule())
		if !errors.Is(err, pricing.ErrInvalidUserCount) {
			t.Fatalf("users=%d: expected ErrInvalidUserCount, got %v", users, err)
		}
	}
}

func TestComputeTotal_Deterministic(t *testing.T) {
	pkg := pricing.Package{ID: "premium", BasePrice: pricing.Units(2450)}
	first, _ := pricing.ComputeTotal(pkg, 12, pricing.DefaultRule())
	second, _ := pricing.ComputeTotal(pkg, 12, pricing.DefaultRule())
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestCatalog_SortedIsStable(t *testing.T) {
	catalog := pricing.Catalog{Packages: []pricing.Package{
		{ID: "c", BasePrice: pricing.Units(300)},
		{ID: "a1", BasePrice: pricing.Units(100)},
		{ID: "b", BasePrice: pricing.Units(200)},
		{ID: "a2", BasePrice: pricing.Units(100)},
	}}

	var got []string
	for _, pkg := range catalog.Sorted() {
		got = append(got, pkg.ID)
	}
	want := []string{"a1", "a2", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if catalog.Packages[0].ID != "c" {
		t.Fatalf("Sorted must not reorder the catalog")
	}
}

func TestCatalog_PackageNotFound(t *testing.T) {
	_, err := pricing.FallbackCatalog().Package("enterprise")
	if !errors.Is(err, pricing.ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
	kind, ok := pricing.KindOf(err)
	if !ok || kind != pricing.KindPackageNotFound {
		t.Fatalf("unexpected kind %q", kind)
	}
	var perr pricing.Error
	if !errors.As(err, &perr) || perr.PackageID != "enterprise" {
		t.Fatalf("expected typed error with package id, got %#v", err)
	}
}

func TestCatalog_PackageByHandle(t *testing.T) {
	catalog := pricing.Catalog{Packages: []pricing.Package{{ID: "gid://shop/Product/1", Handle: "essential"}}}
	pkg, err := catalog.Package("Essential")
	if err != nil {
		t.Fatalf("lookup by handle: %v", err)
	}
	if pkg.ID != "gid://shop/Product/1" {
		t.Fatalf("unexpected package %q", pkg.ID)
	}
}

func TestFindVariant(t *testing.T) {
	pkg := pricing.Package{
		ID: "essential",
		Variants: []pricing.Variant{
			{ID: "v10", Options: []pricing.Option{{Name: "Users", Value: "10"}}},
			{ID: "v-custom", Options: []pricing.Option{{Name: "Users", Value: "Custom"}}},
		},
	}

	cases := []struct {
		name    string
		users   int
		wantID  string
		wantErr error
	}{
		{name: "exact", users: 10, wantID: "v10"},
		{name: "missing within threshold", users: 11, wantErr: pricing.ErrVariantNotFound},
		{name: "custom above threshold", users: 51, wantID: "v-custom"},
		{name: "invalid count", users: 0, wantErr: pricing.ErrInvalidUserCount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pricing.FindVariant(pkg, tc.users, pricing.DefaultCustomQuoteThreshold)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("find variant: %v", err)
			}
			if got.ID != tc.wantID {
				t.Fatalf("expected %s, got %s", tc.wantID, got.ID)
			}
		})
	}

	pkg.Variants = pkg.Variants[:1]
	if _, err := pricing.FindVariant(pkg, 60, pricing.DefaultCustomQuoteThreshold); !errors.Is(err, pricing.ErrCustomVariantNotFound) {
		t.Fatalf("expected ErrCustomVariantNotFound, got %v", err)
	}
}

func TestFallbackCatalog(t *testing.T) {
	catalog := pricing.FallbackCatalog()
	if catalog.Len() != 3 {
		t.Fatalf("expected three fallback packages, got %d", catalog.Len())
	}

	var names []string
	for _, pkg := range catalog.Sorted() {
		names = append(names, pkg.Name)
	}
	if diff := cmp.Diff([]string{"Starter", "Essential", "Premium"}, names); diff != "" {
		t.Fatalf("fallback packages mismatch (-want +got):\n%s", diff)
	}

	essential, err := catalog.Package("essential")
	if err != nil {
		t.Fatalf("essential: %v", err)
	}
	if essential.BasePrice != pricing.Units(1450) {
		t.Fatalf("unexpected essential price %s", essential.BasePrice)
	}
	variant, err := pricing.FindVariant(essential, 10, pricing.DefaultCustomQuoteThreshold)
	if err != nil {
		t.Fatalf("variant: %v", err)
	}
	if variant.ID != "essential-users-10" || variant.Price != pricing.Units(2450) {
		t.Fatalf("unexpected variant %+v", variant)
	}
	custom, err := pricing.FindVariant(essential, 75, pricing.DefaultCustomQuoteThreshold)
	if err != nil || custom.ID != "essential-custom" {
		t.Fatalf("expected custom variant, got %+v (%v)", custom, err)
	}
}
