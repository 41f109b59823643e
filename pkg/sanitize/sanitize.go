// Package sanitize cleans the small amount of rich text a company may attach
// to its signatures (tagline, legal disclaimer) before it is embedded
// unescaped into signature markup.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextOnce   sync.Once
	richTextPolicy *bluemonday.Policy
)

// RichText keeps inline emphasis, line breaks, and https/mailto links, and
// strips everything else.
func RichText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(richTextSanitizer().Sanitize(trimmed))
}

// PlainText strips all markup, leaving escaped text.
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(trimmed))
}

func richTextSanitizer() *bluemonday.Policy {
	richTextOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "br", "small", "span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("https", "mailto")
		policy.RequireParseableURLs(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		policy.RequireNoFollowOnFullyQualifiedLinks(true)
		richTextPolicy = policy
	})
	return richTextPolicy
}
