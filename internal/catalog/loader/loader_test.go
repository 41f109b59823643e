package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-lumio/internal/catalog/loader"
	"github.com/goliatone/go-lumio/pkg/catalog"
)

const payload = `{"products":[]}`

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(catalog.NewLoaderOptions())
	doc, err := l.Load(context.Background(), catalog.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Format() != catalog.FormatJSON {
		t.Fatalf("expected json format, got %q", doc.Format())
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{"catalogs/live.yaml": {Data: []byte("products: []\n")}}

	l := loader.New(catalog.NewLoaderOptions(catalog.WithFileSystem(files)))
	doc, err := l.Load(context.Background(), catalog.SourceFromFS("catalogs/live.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != catalog.FormatYAML {
		t.Fatalf("expected yaml format, got %q", doc.Format())
	}

	if _, err := loader.New(catalog.NewLoaderOptions()).Load(context.Background(), catalog.SourceFromFS("catalogs/live.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/catalog":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(payload))
		case "/large":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	disabled := loader.New(catalog.NewLoaderOptions())
	if _, err := disabled.Load(ctx, catalog.SourceFromURL(server.URL+"/catalog")); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := loader.New(catalog.NewLoaderOptions(catalog.WithHTTPClient(server.Client()), catalog.WithMaxBytes(32)))
	doc, err := l.Load(ctx, catalog.SourceFromURL(server.URL+"/catalog"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := l.Load(ctx, catalog.SourceFromURL(server.URL+"/missing")); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
	if _, err := l.Load(ctx, catalog.SourceFromURL(server.URL+"/large")); err == nil {
		t.Fatalf("expected size limit error")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(catalog.NewLoaderOptions())
	if _, err := l.Load(ctx, catalog.SourceFromFile("catalog.json")); err == nil {
		t.Fatalf("expected context error")
	}
}
