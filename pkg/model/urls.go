package model

import "strings"

// DisplayURL strips a leading http:// or https:// scheme (and a trailing
// slash) for display purposes.
func DisplayURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "https://"):
		trimmed = trimmed[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		trimmed = trimmed[len("http://"):]
	}
	return strings.TrimSuffix(trimmed, "/")
}

// LinkURL returns raw as an absolute https:// link regardless of the scheme
// (if any) it was stored with. Empty input yields an empty string.
func LinkURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "https://"):
		trimmed = trimmed[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		trimmed = trimmed[len("http://"):]
	case strings.HasPrefix(trimmed, "//"):
		trimmed = trimmed[2:]
	}
	if trimmed == "" {
		return ""
	}
	return "https://" + trimmed
}

// TelURL builds a tel: link from a human formatted phone number, keeping the
// leading plus sign and digits only.
func TelURL(raw string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "tel:" + b.String()
}

// MailtoURL builds a mailto: link for the supplied address.
func MailtoURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return "mailto:" + trimmed
}
