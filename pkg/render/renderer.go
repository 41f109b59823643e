package render

import (
	"context"

	"github.com/goliatone/go-lumio/pkg/model"
)

// Renderer converts a signature into a byte representation (inbox-safe HTML,
// plain text, etc.). Implementations must be deterministic: identical inputs
// produce identical bytes.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, signature model.Signature, options RenderOptions) ([]byte, error)
}
