// Package catalog defines how live pricing catalogs are sourced, loaded and
// parsed, and resolves them into a pricing.Catalog with fallback semantics.
//
// Loader and Parser implementations live under internal/catalog; construct
// them through the root lumio package.
package catalog
