package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/pricing"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int

	inputConfigs []InputConfig
	selects      []SelectConfig
	multis       []SelectConfig
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multis = append(s.multis, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func indexOfVariant(t *testing.T, id model.TemplateID) int {
	t.Helper()
	for i, candidate := range model.AllTemplateIDs() {
		if candidate == id {
			return i
		}
	}
	t.Fatalf("unknown variant %s", id)
	return -1
}

func TestSignatureWizard_Collect(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{" Jane Doe ", "CTO", "jane@example.com", "+1 555 0100", "Acme", "acme.example"},
		selectIdx: []int{indexOfVariant(t, model.Template2)},
		multiIdx:  [][]int{{1, 5}},
		confirm:   []bool{true},
	}
	seed := model.Signature{Show: model.AllShown()}

	sig, err := NewSignatureWizard(driver).Collect(context.Background(), seed)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := model.Employee{Name: "Jane Doe", Position: "CTO", Email: "jane@example.com", Phone: "+1 555 0100"}
	if diff := cmp.Diff(want, sig.Employee); diff != "" {
		t.Fatalf("employee mismatch (-want +got):\n%s", diff)
	}
	if sig.Company.Name != "Acme" || sig.Company.Website != "acme.example" {
		t.Fatalf("unexpected company %+v", sig.Company)
	}
	if sig.Variant != model.Template2 {
		t.Fatalf("expected template-2, got %s", sig.Variant)
	}
	elements := model.Elements()
	for i, element := range elements {
		wantOn := i == 1 || i == 5
		if sig.Show.Enabled(element) != wantOn {
			t.Fatalf("element %s enabled=%v, want %v", element, sig.Show.Enabled(element), wantOn)
		}
	}
	if len(driver.multis) != 1 || len(driver.multis[0].Defaults) != len(elements) {
		t.Fatalf("expected every element preselected, got %+v", driver.multis)
	}
	if driver.textPos != 0 {
		t.Fatalf("centered layout should not ask for a disclaimer")
	}
}

func TestSignatureWizard_AsksDisclaimerForCompactLayout(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Jane", "", "", "", "Acme", ""},
		selectIdx: []int{indexOfVariant(t, model.Template4)},
		multiIdx:  [][]int{{}},
		textAreas: []string{" Confidential. "},
		confirm:   []bool{true},
	}
	sig, err := NewSignatureWizard(driver).Collect(context.Background(), model.Signature{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if sig.Company.Disclaimer != "Confidential." {
		t.Fatalf("unexpected disclaimer %q", sig.Company.Disclaimer)
	}
}

func TestSignatureWizard_DeclinedConfirmation(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Jane", "", "", "", "Acme", ""},
		selectIdx: []int{0},
		multiIdx:  [][]int{{0}},
		confirm:   []bool{false},
	}
	_, err := NewSignatureWizard(driver).Collect(context.Background(), model.Signature{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestSignatureWizard_UsesSeedDefaults(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Jane", "", "", "", "Acme", ""},
		selectIdx: []int{0},
		multiIdx:  [][]int{{}},
		confirm:   []bool{true},
	}
	seed := model.Signature{
		Employee: model.Employee{Name: "Seed Name"},
		Variant:  model.Template5,
	}
	if _, err := NewSignatureWizard(driver).Collect(context.Background(), seed); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if driver.inputConfigs[0].Default != "Seed Name" {
		t.Fatalf("expected seed name default, got %q", driver.inputConfigs[0].Default)
	}
	if driver.selects[0].DefaultIndex != indexOfVariant(t, model.Template5) {
		t.Fatalf("expected seed variant preselected, got %d", driver.selects[0].DefaultIndex)
	}
}

func TestSignatureWizard_PropagatesDriverErrors(t *testing.T) {
	_, err := NewSignatureWizard(&stubDriver{}).Collect(context.Background(), model.Signature{})
	if err == nil {
		t.Fatalf("expected error from unscripted driver")
	}
}

func TestQuoteWizard_Collect(t *testing.T) {
	calc := pricing.NewCalculator(pricing.FallbackCatalog())
	driver := &stubDriver{
		selectIdx: []int{2},
		inputs:    []string{"12"},
	}
	id, users, err := NewQuoteWizard(driver).Collect(context.Background(), calc)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if id != "premium" || users != 12 {
		t.Fatalf("unexpected answer %s/%d", id, users)
	}
	if driver.selects[0].DefaultIndex != 0 {
		t.Fatalf("expected cheapest package preselected")
	}
	if driver.selects[0].Options[0] != "Starter (from $950)" {
		t.Fatalf("unexpected option label %q", driver.selects[0].Options[0])
	}
}

func TestValidators(t *testing.T) {
	if err := positiveInt("0"); err == nil {
		t.Fatalf("expected zero to be rejected")
	}
	if err := positiveInt(" 3 "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := optionalEmail(""); err != nil {
		t.Fatalf("empty email should be allowed: %v", err)
	}
	if err := optionalEmail("not-an-email"); err == nil {
		t.Fatalf("expected invalid email error")
	}
	if err := required("name")("  "); err == nil {
		t.Fatalf("expected required error")
	}
}

func TestIndexHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}
	if indexOf(options, "c") != 2 || indexOf(options, "z") != -1 {
		t.Fatalf("indexOf mismatch")
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"c", "a"})); diff != "" {
		t.Fatalf("indicesOf mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, defaultsFromIndices(options, []int{1, 7})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch:\n%s", diff)
	}
}
