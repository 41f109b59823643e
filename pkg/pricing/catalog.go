package pricing

import (
	"slices"
	"strconv"
	"strings"
)

// CustomOptionValue marks the variant used for custom quotes.
const CustomOptionValue = "custom"

// Catalog is an ordered list of packages. Order is the source order; use
// Sorted for presentation.
type Catalog struct {
	Packages []Package `json:"packages" yaml:"packages"`
}

// Len returns the number of packages.
func (c Catalog) Len() int {
	return len(c.Packages)
}

// Sorted returns the packages ascending by base price, keeping source order
// for equal prices. The catalog is not modified.
func (c Catalog) Sorted() []Package {
	out := slices.Clone(c.Packages)
	slices.SortStableFunc(out, func(a, b Package) int {
		switch {
		case a.BasePrice < b.BasePrice:
			return -1
		case a.BasePrice > b.BasePrice:
			return 1
		}
		return 0
	})
	return out
}

// Package looks up a package by id or handle.
func (c Catalog) Package(id string) (Package, error) {
	key := strings.TrimSpace(id)
	for _, pkg := range c.Packages {
		if pkg.ID == key || (pkg.Handle != "" && strings.EqualFold(pkg.Handle, key)) {
			return pkg, nil
		}
	}
	return Package{}, Error{Kind: KindPackageNotFound, PackageID: key}
}

// FindVariant locates the variant whose options encode exactly users. When no
// exact match exists and users is above threshold, the variant marked
// "custom" is returned. Neither case silently defaults.
func FindVariant(pkg Package, users, threshold int) (Variant, error) {
	if users < 1 {
		return Variant{}, Error{Kind: KindInvalidUserCount, PackageID: pkg.ID, Message: "user count must be at least 1"}
	}
	if threshold <= 0 {
		threshold = DefaultCustomQuoteThreshold
	}

	want := strconv.Itoa(users)
	for _, variant := range pkg.Variants {
		if variantHasValue(variant, want) {
			return variant, nil
		}
	}
	if users <= threshold {
		return Variant{}, Error{Kind: KindVariantNotFound, PackageID: pkg.ID, Users: users}
	}
	for _, variant := range pkg.Variants {
		if variantHasValue(variant, CustomOptionValue) {
			return variant, nil
		}
	}
	return Variant{}, Error{Kind: KindCustomVariantNotFound, PackageID: pkg.ID, Users: users}
}

func variantHasValue(variant Variant, value string) bool {
	for _, option := range variant.Options {
		if strings.EqualFold(strings.TrimSpace(option.Value), value) {
			return true
		}
	}
	return false
}
