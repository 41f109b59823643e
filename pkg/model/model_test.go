package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestParseTemplateID(t *testing.T) {
	cases := []struct {
		raw     string
		want    TemplateID
		wantErr bool
	}{
		{raw: "standard", want: TemplateStandard},
		{raw: "  Minimal ", want: TemplateMinimal},
		{raw: "template3", want: Template3},
		{raw: "TEMPLATE-6", want: Template6},
		{raw: "template-7", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "fancy", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseTemplateID(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrUnrecognizedVariant) {
				t.Fatalf("%q: expected ErrUnrecognizedVariant, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: got %q, %v; want %q", tc.raw, got, err, tc.want)
		}
	}
}

func TestResolveTemplateID_FallsBack(t *testing.T) {
	id, fellBack := ResolveTemplateID("template-9")
	if id != DefaultTemplateID || !fellBack {
		t.Fatalf("expected fallback to %s, got %s (%v)", DefaultTemplateID, id, fellBack)
	}
	id, fellBack = ResolveTemplateID("animated")
	if id != TemplateAnimated || fellBack {
		t.Fatalf("unexpected resolution %s (%v)", id, fellBack)
	}
}

func TestAllTemplateIDs_AreValid(t *testing.T) {
	ids := AllTemplateIDs()
	if len(ids) != 9 {
		t.Fatalf("expected 9 variants, got %d", len(ids))
	}
	for _, id := range ids {
		if !id.Valid() {
			t.Fatalf("%s should be valid", id)
		}
	}
}

func TestShowElements_OmittedTogglesDefaultToTrue(t *testing.T) {
	var fromJSON ShowElements
	if err := json.Unmarshal([]byte(`{"showFax":false,"showBanner":false}`), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	want := AllShown()
	want.ShowFax = false
	want.ShowBanner = false
	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Fatalf("json toggles mismatch (-want +got):\n%s", diff)
	}

	var fromYAML ShowElements
	if err := yaml.Unmarshal([]byte("show_fax: false\nshow_banner: false\n"), &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if diff := cmp.Diff(want, fromYAML); diff != "" {
		t.Fatalf("yaml toggles mismatch (-want +got):\n%s", diff)
	}
}

func TestShowElements_SetAndEnabled(t *testing.T) {
	show := NoneShown()
	for _, element := range Elements() {
		if show.Enabled(element) {
			t.Fatalf("%s should start disabled", element)
		}
		if !show.Set(element, true) {
			t.Fatalf("%s should be settable", element)
		}
		if !show.Enabled(element) {
			t.Fatalf("%s should be enabled after Set", element)
		}
	}
	if diff := cmp.Diff(AllShown(), show); diff != "" {
		t.Fatalf("expected every toggle on (-want +got):\n%s", diff)
	}
	if show.Set(Element("sparkles"), true) || show.Enabled(Element("sparkles")) {
		t.Fatalf("unknown elements must be rejected")
	}
}

func TestParseShowList(t *testing.T) {
	show, err := ParseShowList("Phone, email")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := NoneShown()
	want.ShowPhone = true
	want.ShowEmail = true
	if diff := cmp.Diff(want, show); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if all, _ := ParseShowList("all"); all != AllShown() {
		t.Fatalf("expected all toggles for \"all\"")
	}
	if none, _ := ParseShowList("none"); none != NoneShown() {
		t.Fatalf("expected no toggles for \"none\"")
	}
	if _, err := ParseShowList("phone,sparkles"); err == nil {
		t.Fatalf("expected unknown element error")
	}
}

func TestEmployeeDisplayName(t *testing.T) {
	cases := []struct {
		employee Employee
		want     string
	}{
		{employee: Employee{Name: "  Jane Doe "}, want: "Jane Doe"},
		{employee: Employee{FirstName: "Jane", LastName: "Doe"}, want: "Jane Doe"},
		{employee: Employee{LastName: "Doe"}, want: "Doe"},
		{employee: Employee{}, want: PlaceholderName},
	}
	for _, tc := range cases {
		if got := tc.employee.DisplayName(); got != tc.want {
			t.Fatalf("DisplayName(%+v) = %q, want %q", tc.employee, got, tc.want)
		}
	}
}

func TestSocialMediaLinks_Order(t *testing.T) {
	links := SocialMedia{
		YouTube:  "https://youtube.com/@acme",
		Facebook: " https://facebook.com/acme ",
		LinkedIn: "",
	}.Links()
	want := []SocialLink{
		{Network: NetworkFacebook, URL: "https://facebook.com/acme"},
		{Network: NetworkYouTube, URL: "https://youtube.com/@acme"},
	}
	if diff := cmp.Diff(want, links); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
}

func TestURLHelpers(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{name: "display https", got: DisplayURL("https://acme.example/"), want: "acme.example"},
		{name: "display bare", got: DisplayURL("acme.example"), want: "acme.example"},
		{name: "link bare", got: LinkURL("acme.example"), want: "https://acme.example"},
		{name: "link http upgraded", got: LinkURL("http://acme.example"), want: "https://acme.example"},
		{name: "link protocol relative", got: LinkURL("//acme.example"), want: "https://acme.example"},
		{name: "link empty", got: LinkURL("  "), want: ""},
		{name: "tel", got: TelURL("+1 (555) 010-1000"), want: "tel:+15550101000"},
		{name: "tel empty", got: TelURL("n/a"), want: ""},
		{name: "mailto", got: MailtoURL(" jane@example.com "), want: "mailto:jane@example.com"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}
