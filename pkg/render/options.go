package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the signature inputs.
type RenderOptions struct {
	// Locale selects the language for row labels ("Phone", "Email", ...).
	Locale string
	// Translator resolves label keys for Locale. Nil keeps the English
	// defaults.
	Translator Translator
	// IconBaseURL overrides the absolute base URL used for social icon
	// images. Signatures are pasted into arbitrary mail clients, so icons must
	// resolve without the hosting site.
	IconBaseURL string
	// Palette carries colors resolved from a brand palette. Company colors
	// take precedence; the palette only fills gaps.
	Palette Palette
}

// Palette holds the colors a renderer falls back to when the company leaves
// its own colors unset.
type Palette struct {
	Primary   string
	Secondary string
}
