// Package template defines the renderer-agnostic template seam used by the
// signature renderers. Layout templates talk to a TemplateRenderer rather than
// a concrete engine so callers can swap engines or stub rendering in tests.
package template
