package signatures

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMountPaths_JoinsBasePath(t *testing.T) {
	want := []string{"/admin/api/signatures/variants", "/admin/api/signatures/render", "/admin/signatures/preview"}
	if diff := cmp.Diff(want, MountPaths("admin/")); diff != "" {
		t.Fatalf("mount paths mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	patterns, err := New().RegisterRoutes(mux, "/admin")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(patterns) != 3 {
		t.Fatalf("unexpected patterns %v", patterns)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/signatures/variants", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
