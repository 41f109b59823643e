package orchestrator_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-lumio/pkg/brand"
	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/orchestrator"
	"github.com/goliatone/go-lumio/pkg/render"
	"github.com/goliatone/go-lumio/pkg/testsupport"
)

type stubRenderer struct {
	name     string
	last     model.Signature
	lastOpts render.RenderOptions
	calls    int
}

func (s *stubRenderer) Name() string {
	if s.name == "" {
		return "stub"
	}
	return s.name
}

func (s *stubRenderer) ContentType() string { return "text/x-stub" }

func (s *stubRenderer) Render(_ context.Context, sig model.Signature, opts render.RenderOptions) ([]byte, error) {
	s.calls++
	s.last = sig
	s.lastOpts = opts
	return []byte("stub:" + sig.Variant.String()), nil
}

func newStubOrchestrator(t *testing.T, options ...orchestrator.Option) (*orchestrator.Orchestrator, *stubRenderer) {
	t.Helper()
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	base := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
	}
	return orchestrator.New(append(base, options...)...), renderer
}

func TestOrchestrator_DefaultsToEmailRenderer(t *testing.T) {
	orch := orchestrator.New()

	result, err := orch.Render(context.Background(), orchestrator.Request{
		Signature: testsupport.FullSignature(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.Renderer != "email" {
		t.Fatalf("expected email renderer, got %q", result.Renderer)
	}
	if !strings.HasPrefix(result.ContentType, "text/html") {
		t.Fatalf("unexpected content type %q", result.ContentType)
	}
	if !bytes.Contains(result.Body, []byte("sig-layout-classic")) {
		t.Fatalf("expected classic layout markup, got:\n%s", result.Body)
	}
	if got := orch.Registry().List(); len(got) != 2 || got[0] != "email" || got[1] != "text" {
		t.Fatalf("unexpected default registry %v", got)
	}
}

func TestOrchestrator_TextRendererByName(t *testing.T) {
	orch := orchestrator.New()

	body, err := orch.Generate(context.Background(), orchestrator.Request{
		Signature: testsupport.FullSignature(),
		Renderer:  "text",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(body), "Ada Lovelace") {
		t.Fatalf("expected plain text body, got:\n%s", body)
	}
	if strings.Contains(string(body), "<table") {
		t.Fatalf("text output must not contain markup")
	}
}

func TestOrchestrator_UnknownRendererErrors(t *testing.T) {
	orch, _ := newStubOrchestrator(t)

	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Signature: testsupport.FullSignature(),
		Renderer:  "pdf",
	})
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestOrchestrator_FallsBackToFirstRenderer(t *testing.T) {
	orch, renderer := newStubOrchestrator(t, orchestrator.WithDefaultRenderer("missing"))

	result, err := orch.Render(context.Background(), orchestrator.Request{Signature: testsupport.FullSignature()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.Renderer != renderer.Name() || renderer.calls != 1 {
		t.Fatalf("expected stub renderer to be used, got %q (calls=%d)", result.Renderer, renderer.calls)
	}
}

func TestOrchestrator_VariantResolution(t *testing.T) {
	var logs bytes.Buffer
	orch, renderer := newStubOrchestrator(t, orchestrator.WithLogger(zerolog.New(&logs)))

	cases := []struct {
		raw      model.TemplateID
		want     model.TemplateID
		fellBack bool
	}{
		{raw: "", want: model.TemplateStandard},
		{raw: "Template3", want: model.Template3},
		{raw: "template-6", want: model.Template6},
		{raw: "holiday", want: model.TemplateStandard, fellBack: true},
	}

	for _, tc := range cases {
		sig := testsupport.FullSignature()
		sig.Variant = tc.raw
		result, err := orch.Render(context.Background(), orchestrator.Request{Signature: sig})
		if err != nil {
			t.Fatalf("render %q: %v", tc.raw, err)
		}
		if result.Variant != tc.want || result.VariantFellBack != tc.fellBack {
			t.Fatalf("variant %q: got %q fellBack=%v", tc.raw, result.Variant, result.VariantFellBack)
		}
		if renderer.last.Variant != tc.want {
			t.Fatalf("renderer received %q, want %q", renderer.last.Variant, tc.want)
		}
	}

	if strings.Count(logs.String(), "unrecognized signature variant") != 1 {
		t.Fatalf("expected a single fallback warning, got:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), `"variant":"holiday"`) {
		t.Fatalf("warning should name the requested variant:\n%s", logs.String())
	}
}

func TestOrchestrator_PaletteFillsMissingColors(t *testing.T) {
	store, err := brand.Default()
	if err != nil {
		t.Fatalf("brand default: %v", err)
	}
	orch, renderer := newStubOrchestrator(t, orchestrator.WithPalettes(store))

	sig := testsupport.FullSignature()
	sig.Company.PrimaryColor = ""
	sig.Company.SecondaryColor = ""
	sig.Company.Palette = "ember"
	sig.Company.PaletteVariant = "muted"

	result, err := orch.Render(context.Background(), orchestrator.Request{Signature: sig})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.Palette.Primary != "#9A3412" {
		t.Fatalf("expected muted ember primary, got %+v", result.Palette)
	}
	if renderer.lastOpts.Palette != result.Palette {
		t.Fatalf("renderer did not receive palette: %+v", renderer.lastOpts.Palette)
	}
}

func TestOrchestrator_PaletteSkippedWhenCompanyHasColors(t *testing.T) {
	store, err := brand.Default()
	if err != nil {
		t.Fatalf("brand default: %v", err)
	}
	orch, renderer := newStubOrchestrator(t, orchestrator.WithPalettes(store))

	sig := testsupport.FullSignature()
	sig.Company.Palette = "ember"

	if _, err := orch.Render(context.Background(), orchestrator.Request{Signature: sig}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.lastOpts.Palette != (render.Palette{}) {
		t.Fatalf("expected no palette when company colors are set, got %+v", renderer.lastOpts.Palette)
	}
}

func TestOrchestrator_ExplicitPaletteWins(t *testing.T) {
	store, err := brand.Default()
	if err != nil {
		t.Fatalf("brand default: %v", err)
	}
	orch, renderer := newStubOrchestrator(t, orchestrator.WithPalettes(store))

	sig := testsupport.FullSignature()
	sig.Company.PrimaryColor = ""
	sig.Company.Palette = "ember"
	explicit := render.Palette{Primary: "#000000", Secondary: "#ffffff"}

	if _, err := orch.Render(context.Background(), orchestrator.Request{
		Signature:     sig,
		RenderOptions: render.RenderOptions{Palette: explicit},
	}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.lastOpts.Palette != explicit {
		t.Fatalf("expected explicit palette, got %+v", renderer.lastOpts.Palette)
	}
}

func TestOrchestrator_MissingPaletteDegrades(t *testing.T) {
	store, err := brand.Default()
	if err != nil {
		t.Fatalf("brand default: %v", err)
	}
	var logs bytes.Buffer
	orch, renderer := newStubOrchestrator(t,
		orchestrator.WithPalettes(store),
		orchestrator.WithLogger(zerolog.New(&logs)),
	)

	sig := testsupport.FullSignature()
	sig.Company.PrimaryColor = ""
	sig.Company.Palette = "neon"

	if _, err := orch.Render(context.Background(), orchestrator.Request{Signature: sig}); err != nil {
		t.Fatalf("render should degrade, got %v", err)
	}
	if renderer.lastOpts.Palette != (render.Palette{}) {
		t.Fatalf("expected empty palette, got %+v", renderer.lastOpts.Palette)
	}
	if !strings.Contains(logs.String(), "palette unavailable") {
		t.Fatalf("expected palette warning, got:\n%s", logs.String())
	}
}

func TestOrchestrator_PassesLocaleTranslatorAndIconBase(t *testing.T) {
	translator := render.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		return locale + ":" + key, nil
	})
	orch, renderer := newStubOrchestrator(t,
		orchestrator.WithTranslator(translator),
		orchestrator.WithIconBaseURL(" https://icons.example.com "),
	)

	if _, err := orch.Render(context.Background(), orchestrator.Request{
		Signature:     testsupport.FullSignature(),
		Locale:        "es",
		RenderOptions: render.RenderOptions{Locale: "fr"},
	}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.lastOpts.Locale != "es" {
		t.Fatalf("request locale should win, got %q", renderer.lastOpts.Locale)
	}
	if renderer.lastOpts.Translator == nil {
		t.Fatalf("expected translator to be injected")
	}
	if renderer.lastOpts.IconBaseURL != "https://icons.example.com" {
		t.Fatalf("unexpected icon base %q", renderer.lastOpts.IconBaseURL)
	}
}

func TestOrchestrator_DefaultLocale(t *testing.T) {
	orch, renderer := newStubOrchestrator(t, orchestrator.WithLocale("de"))

	if _, err := orch.Render(context.Background(), orchestrator.Request{Signature: testsupport.FullSignature()}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.lastOpts.Locale != "de" {
		t.Fatalf("expected default locale, got %q", renderer.lastOpts.Locale)
	}

	if _, err := orch.Render(context.Background(), orchestrator.Request{
		Signature:     testsupport.FullSignature(),
		RenderOptions: render.RenderOptions{Locale: "fr"},
	}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.lastOpts.Locale != "fr" {
		t.Fatalf("explicit locale should win, got %q", renderer.lastOpts.Locale)
	}
}

func TestOrchestrator_AppliesTransformer(t *testing.T) {
	transformCalled := false
	transformer := orchestrator.TransformerFunc(func(_ context.Context, sig *model.Signature) error {
		transformCalled = true
		sig.Employee.Position = "Patched"
		return nil
	})
	orch, renderer := newStubOrchestrator(t, orchestrator.WithTransformer(transformer))

	original := testsupport.FullSignature()
	if _, err := orch.Generate(context.Background(), orchestrator.Request{Signature: original}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !transformCalled {
		t.Fatalf("expected transformer to be invoked")
	}
	if renderer.last.Employee.Position != "Patched" {
		t.Fatalf("transformer mutation missing: %q", renderer.last.Employee.Position)
	}
	if original.Employee.Position == "Patched" {
		t.Fatalf("transformer must not mutate the caller's signature")
	}
}

func TestOrchestrator_TransformerErrorStopsRender(t *testing.T) {
	boom := errors.New("boom")
	orch, renderer := newStubOrchestrator(t, orchestrator.WithTransformer(
		orchestrator.TransformerFunc(func(context.Context, *model.Signature) error { return boom }),
	))

	_, err := orch.Generate(context.Background(), orchestrator.Request{Signature: testsupport.FullSignature()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected transformer error, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer should not run after a transform failure")
	}
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	orch, renderer := newStubOrchestrator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orch.Generate(ctx, orchestrator.Request{Signature: testsupport.FullSignature()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer should not run for a cancelled context")
	}
}
