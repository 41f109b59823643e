package pricing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMountPaths_JoinsBasePath(t *testing.T) {
	want := []string{"/v1/api/pricing/packages", "/v1/api/pricing/quote", "/v1/api/pricing/variant"}
	if diff := cmp.Diff(want, MountPaths("v1/")); diff != "" {
		t.Fatalf("mount paths mismatch (-want +got):\n%s", diff)
	}
	want = []string{"/prices/packages", "/prices/quote", "/prices/variant"}
	if diff := cmp.Diff(want, MountPaths("", WithRoutePath("prices/"))); diff != "" {
		t.Fatalf("mount paths mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	patterns, err := New().RegisterRoutes(mux, "/")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(patterns) != 3 || patterns[0] != "/api/pricing/packages" {
		t.Fatalf("unexpected patterns %v", patterns)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/pricing/packages", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
