// Package text renders signatures as plain text for the text/plain part of
// multipart messages and for clients that strip HTML.
package text

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-lumio/pkg/blocks"
	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/render"
	"github.com/goliatone/go-lumio/pkg/sanitize"
)

const Name = "text"

// Option configures the text renderer.
type Option func(*Renderer)

// WithSeparator sets the line printed between the greeting block and the
// signature. An empty separator omits the line.
func WithSeparator(sep string) Option {
	return func(r *Renderer) {
		r.separator = sep
	}
}

// Renderer emits one block per line in a fixed order.
type Renderer struct {
	separator string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{separator: "--"}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render ignores layout differences between variants; every toggle is
// honored.
func (r *Renderer) Render(ctx context.Context, sig model.Signature, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := blocks.Compose(sig, blocks.HonorAll)
	labels := render.Labels(opts)

	var lines []string
	if r.separator != "" {
		lines = append(lines, r.separator)
	}
	lines = append(lines, b.Name)

	switch {
	case b.Position != "" && b.Department != "":
		lines = append(lines, fmt.Sprintf("%s | %s", b.Position, b.Department))
	case b.Position != "":
		lines = append(lines, b.Position)
	}
	if b.CompanyName != "" {
		lines = append(lines, b.CompanyName)
	}

	row := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", label, value))
		}
	}
	row(labels["phone"], b.Phone)
	row(labels["mobile"], b.Mobile)
	row(labels["fax"], b.Fax)
	row(labels["email"], b.Email)
	row(labels["website"], model.DisplayURL(b.Website))
	row(labels["address"], b.Address)
	row(labels["meeting"], b.MeetingLink)

	for _, social := range b.Social {
		lines = append(lines, fmt.Sprintf("%s: %s", social.Network, social.URL))
	}
	for _, profile := range b.Profiles {
		lines = append(lines, fmt.Sprintf("%s: %s", profile.Network, profile.URL))
	}
	if b.Slogan != "" {
		lines = append(lines, b.Slogan)
	}
	if b.Tagline != "" {
		lines = append(lines, html.UnescapeString(sanitize.PlainText(b.Tagline)))
	}

	return []byte(strings.Join(lines, "\n") + "\n"), nil
}
