// Package pricing computes seat-based package totals and resolves the
// storefront variant for a package and user count.
//
// All functions are pure. A Calculator binds a catalog and a Rule and falls
// back to FallbackCatalog when the supplied catalog is empty, flagging the
// result so callers can disclose it.
package pricing
