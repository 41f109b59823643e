package lumio

import (
	"io/fs"

	"github.com/goliatone/go-lumio/pkg/renderers/email"
)

// EmbeddedTemplates exposes the built-in email layouts so callers can reuse or
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return email.TemplatesFS()
}
