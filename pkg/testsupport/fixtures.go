package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lumio/pkg/model"
)

// FullSignature returns a signature with every optional field populated and
// every toggle on. Tests clear fields or toggles from here.
func FullSignature() model.Signature {
	return model.Signature{
		Employee: model.Employee{
			ID:          "emp-1",
			Name:        "Ada Lovelace",
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Position:    "Head of Engineering",
			Department:  "Platform",
			Email:       "ada@acme.io",
			Phone:       "+1 (555) 010-2000",
			Mobile:      "+1 555 010 3000",
			Fax:         "+1 555 010 4000",
			Avatar:      "https://cdn.acme.io/people/ada.png",
			MeetingLink: "https://cal.acme.io/ada",
			LinkedIn:    "https://linkedin.com/in/ada",
			Twitter:     "https://x.com/ada",
			Location:    "London",
		},
		Company: model.Company{
			ID:             "acme",
			Name:           "Acme",
			PrimaryColor:   "#112233",
			SecondaryColor: "#445566",
			Logo:           "https://cdn.acme.io/logo.png",
			Icon:           "https://cdn.acme.io/icon.png",
			Website:        "https://acme.io",
			Address:        "1 Market St, San Francisco",
			Slogan:         "Built to last",
			Banner:         "https://cdn.acme.io/banner.png",
			Tagline:        "<strong>Fast</strong> and friendly",
			Disclaimer:     "This message is confidential.",
			SocialMedia: model.SocialMedia{
				Facebook:  "https://facebook.com/acme",
				Twitter:   "https://x.com/acme",
				LinkedIn:  "https://linkedin.com/company/acme",
				Instagram: "https://instagram.com/acme",
				YouTube:   "https://youtube.com/@acme",
			},
		},
		Variant: model.TemplateStandard,
		Show:    model.AllShown(),
	}
}

// MustLoadSignature loads a JSON signature fixture.
func MustLoadSignature(t *testing.T, path string) model.Signature {
	t.Helper()

	sig, err := LoadSignature(path)
	if err != nil {
		t.Fatalf("load signature: %v", err)
	}
	return sig
}

// LoadSignature reads a JSON fixture into a Signature, returning an error for
// callers managing setup outside of *testing.T. Toggles the fixture omits
// default to on.
func LoadSignature(path string) (model.Signature, error) {
	if path == "" {
		return model.Signature{}, errors.New("testsupport: signature path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Signature{}, fmt.Errorf("testsupport: read signature: %w", err)
	}
	out := model.Signature{Show: model.AllShown()}
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Signature{}, fmt.Errorf("testsupport: unmarshal signature: %w", err)
	}
	return out, nil
}

// Fixture resolves a file under this package's testdata directory so other
// packages can share fixtures without relative path juggling.
func Fixture(name string) string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("testdata", name)
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
