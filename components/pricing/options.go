package pricing

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	corepricing "github.com/goliatone/go-lumio/pkg/pricing"
)

type GuardFunc func(r *http.Request) error

// CalculatorFunc returns the calculator for a request. It lets hosts swap in a
// freshly resolved catalog without rebuilding the handler.
type CalculatorFunc func(ctx context.Context) *corepricing.Calculator

// Validator checks a decoded JSON payload against a named schema.
type Validator interface {
	ValidateRequest(schema string, payload any) error
}

// Schema names passed to the Validator.
const (
	SchemaQuoteRequest = "QuoteRequest"
)

type Options struct {
	RoutePath    string
	PackagesPath string
	QuotePath    string
	VariantPath  string
	PackageParam string
	UsersParam   string
	MaxBodyBytes int64
	Guard        GuardFunc
	Validator    Validator
	Logger       zerolog.Logger

	Calculator CalculatorFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/pricing",
		PackagesPath: "/packages",
		QuotePath:    "/quote",
		VariantPath:  "/variant",
		PackageParam: "package",
		UsersParam:   "users",
		MaxBodyBytes: 64 << 10,
		Logger:       zerolog.Nop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	if opts.RoutePath == "" {
		opts.RoutePath = defaults.RoutePath
	}
	if opts.PackagesPath == "" {
		opts.PackagesPath = defaults.PackagesPath
	}
	if opts.QuotePath == "" {
		opts.QuotePath = defaults.QuotePath
	}
	if opts.VariantPath == "" {
		opts.VariantPath = defaults.VariantPath
	}
	if opts.PackageParam == "" {
		opts.PackageParam = defaults.PackageParam
	}
	if opts.UsersParam == "" {
		opts.UsersParam = defaults.UsersParam
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if opts.Calculator == nil {
		fallback := corepricing.NewCalculator(corepricing.FallbackCatalog(), corepricing.WithFallback(true))
		opts.Calculator = func(context.Context) *corepricing.Calculator { return fallback }
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithValidator(validator Validator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Validator = validator
	}
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

// WithCalculator serves every request from calc.
func WithCalculator(calc *corepricing.Calculator) OptionFn {
	return func(o *Options) {
		if o == nil || calc == nil {
			return
		}
		o.Calculator = func(context.Context) *corepricing.Calculator { return calc }
	}
}

func WithCalculatorFunc(fn CalculatorFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Calculator = fn
	}
}
