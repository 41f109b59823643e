package email

import (
	"embed"
	"io/fs"
)

//go:embed templates/document.tmpl templates/layouts/*.tmpl templates/partials/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded signature templates. Paths are rooted at
// "templates/", so replacement bundles passed to WithTemplatesFS must use the
// same layout.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
