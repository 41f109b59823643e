package catalog

import (
	"context"

	"github.com/goliatone/go-lumio/pkg/pricing"
)

// Parser turns a Document into a pricing catalog. Malformed documents yield
// errors matching pricing.ErrCatalogFormatInvalid.
type Parser interface {
	Parse(ctx context.Context, doc Document) (pricing.Catalog, error)
}

// ParserOptions tune parsing behaviour.
type ParserOptions struct {
	// Format forces the document encoding instead of detecting it.
	Format Format
	// UsersOption names the storefront option that encodes the seat count.
	// Other options are dropped; empty keeps every option.
	UsersOption string
}

// ParserOption mutates ParserOptions prior to construction.
type ParserOption func(*ParserOptions)

// WithFormat forces a document encoding.
func WithFormat(format Format) ParserOption {
	return func(opts *ParserOptions) {
		opts.Format = format
	}
}

// WithUsersOption overrides the seat count option name.
func WithUsersOption(name string) ParserOption {
	return func(opts *ParserOptions) {
		if name != "" {
			opts.UsersOption = name
		}
	}
}

// NewParserOptions applies the options over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{UsersOption: pricing.UsersOptionName}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
