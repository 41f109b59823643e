package signatures

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPaths returns the variants, render, and preview paths under basePath.
func MountPaths(basePath string, fns ...OptionFn) []string {
	opts := NewOptions(fns...)
	return mountPaths(basePath, opts)
}

// RegisterRoutes registers the signature routes under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the routes using a pre-built Options
// value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("signatures: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	handler, err := HandlerWithOptions(opts)
	if err != nil {
		return nil, err
	}

	base := normalizeBase(basePath)
	if base != "" {
		handler = http.StripPrefix(base, handler)
	}
	patterns := mountPaths(basePath, opts)
	for _, pattern := range patterns {
		mux.Handle(pattern, handler)
	}
	return patterns, nil
}

func mountPaths(basePath string, opts Options) []string {
	base := normalizeBase(basePath)
	return []string{
		base + normalizeRoute(opts.VariantsPath),
		base + normalizeRoute(opts.RenderPath),
		base + normalizeRoute(opts.PreviewPath),
	}
}

func normalizeBase(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}

func normalizeRoute(routePath string) string {
	routePath = strings.TrimSpace(routePath)
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	return routePath
}
