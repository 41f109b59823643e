package pricing

import (
	"fmt"
	"strconv"
)

// UsersOptionName is the storefront option that encodes the seat count.
const UsersOptionName = "Users"

// FallbackCatalog is the fixed catalog used when no live catalog can be
// loaded, priced under DefaultRule. Each call returns a fresh copy.
func FallbackCatalog() Catalog {
	return FallbackCatalogFor(DefaultRule())
}

// FallbackCatalogFor builds the fallback catalog with one variant per user
// count up to the rule's threshold, plus the custom variant.
func FallbackCatalogFor(rule Rule) Catalog {
	return Catalog{Packages: []Package{
		fallbackPackage(rule, "starter", "Starter", "Consistent signatures for small teams.", Units(950), []string{
			"All signature templates",
			"Company branding",
			"Email support",
		}),
		fallbackPackage(rule, "essential", "Essential", "Centrally managed signatures with banners.", Units(1450), []string{
			"Everything in Starter",
			"Marketing banners",
			"Meeting links",
			"Priority support",
		}),
		fallbackPackage(rule, "premium", "Premium", "Signature management for growing organisations.", Units(2450), []string{
			"Everything in Essential",
			"Animated templates",
			"Custom disclaimers",
			"Dedicated onboarding",
		}),
	}}
}

func fallbackPackage(rule Rule, id, name, description string, base Money, features []string) Package {
	threshold := rule.threshold()
	variants := make([]Variant, 0, threshold+1)
	for users := 1; users <= threshold; users++ {
		count := strconv.Itoa(users)
		variants = append(variants, Variant{
			ID:      fmt.Sprintf("%s-users-%d", id, users),
			Title:   count + " users",
			Price:   rule.variantPrice(base, users),
			Options: []Option{{Name: UsersOptionName, Value: count}},
		})
	}
	variants = append(variants, Variant{
		ID:      id + "-custom",
		Title:   "Custom",
		Options: []Option{{Name: UsersOptionName, Value: CustomOptionValue}},
	})

	return Package{
		ID:          id,
		Handle:      id,
		Name:        name,
		Description: description,
		Features:    features,
		BasePrice:   base,
		Variants:    variants,
	}
}
