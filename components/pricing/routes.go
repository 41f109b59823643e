package pricing

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

// MountPaths returns the full mount paths for the packages, quote, and variant
// routes under basePath.
func MountPaths(basePath string, fns ...OptionFn) []string {
	opts := NewOptions(fns...)
	root := mountPath(basePath, opts.RoutePath)
	return []string{
		joinPath(root, opts.PackagesPath),
		joinPath(root, opts.QuotePath),
		joinPath(root, opts.VariantPath),
	}
}

// RegisterRoutes registers the pricing routes under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the routes using a pre-built Options
// value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("pricing: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	root := mountPath(basePath, opts.RoutePath)
	handler := http.StripPrefix(root, HandlerWithOptions(opts))

	patterns := []string{
		joinPath(root, opts.PackagesPath),
		joinPath(root, opts.QuotePath),
		joinPath(root, opts.VariantPath),
	}
	for _, pattern := range patterns {
		mux.Handle(pattern, handler)
	}
	return patterns, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return strings.TrimRight(routePath, "/")
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return strings.TrimRight(basePath+routePath, "/")
}

func joinPath(root, sub string) string {
	sub = strings.TrimSpace(sub)
	if !strings.HasPrefix(sub, "/") {
		sub = "/" + sub
	}
	return root + sub
}
