package render

import "strings"

// Translator resolves a label key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate delegates to the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// Label keys understood by the built-in renderers.
const (
	LabelPhone       = "signature.label.phone"
	LabelMobile      = "signature.label.mobile"
	LabelFax         = "signature.label.fax"
	LabelEmail       = "signature.label.email"
	LabelWebsite     = "signature.label.website"
	LabelAddress     = "signature.label.address"
	LabelMeetingLink = "signature.label.meeting"
)

var defaultLabels = map[string]string{
	LabelPhone:       "Phone",
	LabelMobile:      "Mobile",
	LabelFax:         "Fax",
	LabelEmail:       "Email",
	LabelWebsite:     "Web",
	LabelAddress:     "Address",
	LabelMeetingLink: "Book a meeting",
}

// Labels resolves every built-in label for the options' locale. Missing
// translations keep the English default.
func Labels(opts RenderOptions) map[string]string {
	out := make(map[string]string, len(defaultLabels))
	for key, fallback := range defaultLabels {
		out[shortLabelKey(key)] = translate(opts.Locale, key, fallback, opts.Translator)
	}
	return out
}

func shortLabelKey(key string) string {
	return strings.TrimPrefix(key, "signature.label.")
}

func translate(locale, key, fallback string, t Translator) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if t == nil {
		return fallback
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
