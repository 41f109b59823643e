package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies pricing failures. Every kind is recoverable; callers show a
// message and, where it applies, switch to fallback data.
type Kind string

const (
	KindPackageNotFound       Kind = "package_not_found"
	KindVariantNotFound       Kind = "variant_not_found"
	KindCustomVariantNotFound Kind = "custom_variant_not_found"
	KindCatalogFormatInvalid  Kind = "catalog_format_invalid"
	KindInvalidUserCount      Kind = "invalid_user_count"
)

var (
	ErrPackageNotFound       = errors.New("package not found")
	ErrVariantNotFound       = errors.New("variant not found")
	ErrCustomVariantNotFound = errors.New("custom variant not found")
	ErrCatalogFormatInvalid  = errors.New("catalog format invalid")
	ErrInvalidUserCount      = errors.New("invalid user count")
)

var sentinels = map[Kind]error{
	KindPackageNotFound:       ErrPackageNotFound,
	KindVariantNotFound:       ErrVariantNotFound,
	KindCustomVariantNotFound: ErrCustomVariantNotFound,
	KindCatalogFormatInvalid:  ErrCatalogFormatInvalid,
	KindInvalidUserCount:      ErrInvalidUserCount,
}

// Error carries the failure kind plus the inputs that produced it. It
// unwraps to the matching Err* sentinel so errors.Is works on either.
type Error struct {
	Kind      Kind
	PackageID string
	Users     int
	Message   string
	Err       error
}

func (e Error) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		if sentinel, ok := sentinels[e.Kind]; ok {
			msg = sentinel.Error()
		} else {
			msg = string(e.Kind)
		}
	}
	switch {
	case e.PackageID != "" && e.Users > 0:
		msg = fmt.Sprintf("%s (package %q, %d users)", msg, e.PackageID, e.Users)
	case e.PackageID != "":
		msg = fmt.Sprintf("%s (package %q)", msg, e.PackageID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "pricing: " + msg
}

func (e Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if sentinel, ok := sentinels[e.Kind]; ok {
		out = append(out, sentinel)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// KindOf returns the kind of a pricing error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var perr Error
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	for kind, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return kind, true
		}
	}
	return "", false
}
