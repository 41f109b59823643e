package text_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/render"
	"github.com/goliatone/go-lumio/pkg/renderers/text"
	"github.com/goliatone/go-lumio/pkg/testsupport"
)

func TestRenderer_FullSignature(t *testing.T) {
	out, err := text.New().Render(context.Background(), testsupport.FullSignature(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		"--",
		"Ada Lovelace",
		"Head of Engineering | Platform",
		"Acme",
		"Phone: +1 (555) 010-2000",
		"Mobile: +1 555 010 3000",
		"Fax: +1 555 010 4000",
		"Email: ada@acme.io",
		"Web: acme.io",
		"Address: 1 Market St, San Francisco",
		"Book a meeting: https://cal.acme.io/ada",
		"facebook: https://facebook.com/acme",
		"twitter: https://x.com/acme",
		"linkedin: https://linkedin.com/company/acme",
		"instagram: https://instagram.com/acme",
		"youtube: https://youtube.com/@acme",
		"linkedin: https://linkedin.com/in/ada",
		"twitter: https://x.com/ada",
		"Built to last",
		"Fast and friendly",
	}, "\n") + "\n"

	if diff := testsupport.CompareGolden(want, string(out)); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_SuppressesDisabledBlocks(t *testing.T) {
	sig := testsupport.FullSignature()
	sig.Show = model.NoneShown()
	sig.Show.ShowEmail = true

	out, err := text.New(text.WithSeparator("")).Render(context.Background(), sig, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "Ada Lovelace\nAcme\nEmail: ada@acme.io\n"
	if string(out) != want {
		t.Fatalf("unexpected output:\n%q", out)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	r := text.New()
	if r.Name() != "text" || r.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected metadata %q %q", r.Name(), r.ContentType())
	}
}
