package signatures

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-lumio/pkg/directory"
	"github.com/goliatone/go-lumio/pkg/orchestrator"
	"github.com/goliatone/go-lumio/pkg/widgets"
)

type GuardFunc func(r *http.Request) error

// Validator checks a decoded JSON payload against a named schema.
type Validator interface {
	ValidateRequest(schema string, payload any) error
}

// Schema names passed to the Validator.
const (
	SchemaRenderRequest = "RenderRequest"
)

type Options struct {
	VariantsPath  string
	RenderPath    string
	PreviewPath   string
	EmployeeParam string
	VariantParam  string
	DownloadParam string
	MaxBodyBytes  int64
	Guard         GuardFunc
	Validator     Validator
	Logger        zerolog.Logger

	Orchestrator *orchestrator.Orchestrator
	Directory    *directory.Directory
	Widgets      *widgets.Registry
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		VariantsPath:  "/api/signatures/variants",
		RenderPath:    "/api/signatures/render",
		PreviewPath:   "/signatures/preview",
		EmployeeParam: "employee",
		VariantParam:  "variant",
		DownloadParam: "download",
		MaxBodyBytes:  256 << 10,
		Logger:        zerolog.Nop(),
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
	if opts.VariantsPath == "" {
		opts.VariantsPath = defaults.VariantsPath
	}
	if opts.RenderPath == "" {
		opts.RenderPath = defaults.RenderPath
	}
	if opts.PreviewPath == "" {
		opts.PreviewPath = defaults.PreviewPath
	}
	if opts.EmployeeParam == "" {
		opts.EmployeeParam = defaults.EmployeeParam
	}
	if opts.VariantParam == "" {
		opts.VariantParam = defaults.VariantParam
	}
	if opts.DownloadParam == "" {
		opts.DownloadParam = defaults.DownloadParam
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if opts.Orchestrator == nil {
		opts.Orchestrator = orchestrator.New(orchestrator.WithLogger(opts.Logger))
	}
	if opts.Widgets == nil {
		opts.Widgets = widgets.NewRegistry()
	}
	return opts
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

func WithOrchestrator(orch *orchestrator.Orchestrator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Orchestrator = orch
	}
}

// WithDirectory enables the preview page. Without a directory the preview
// route answers 404.
func WithDirectory(dir *directory.Directory) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Directory = dir
	}
}

// WithWidgets mounts the registry's widgets on the preview page.
func WithWidgets(reg *widgets.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Widgets = reg
	}
}

func WithPreviewPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PreviewPath = path
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
