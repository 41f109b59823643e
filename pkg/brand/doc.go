// Package brand stores named color palettes as go-theme manifests. Palettes
// fill the colors a company leaves unset: a signature for a company without a
// primary color can still pick up the palette's "primary" token.
//
// Store implements theme.ThemeSelector so it can be handed to anything that
// accepts a go-theme selector.
package brand
