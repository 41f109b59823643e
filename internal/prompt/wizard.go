// Package prompt collects signature and quote inputs interactively.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/pricing"
	"github.com/goliatone/go-lumio/pkg/renderers/email"
)

// SignatureWizard walks the user through the fields of a signature.
type SignatureWizard struct {
	driver Driver
}

// NewSignatureWizard builds a wizard over driver.
func NewSignatureWizard(driver Driver) *SignatureWizard {
	return &SignatureWizard{driver: driver}
}

// Collect asks for each field using seed values as defaults. Declining the
// final confirmation returns ErrAborted.
func (w *SignatureWizard) Collect(ctx context.Context, seed model.Signature) (model.Signature, error) {
	if w == nil || w.driver == nil {
		return model.Signature{}, errors.New("prompt: driver is required")
	}
	sig := seed
	d := w.driver

	if err := d.Info(ctx, "Signature details"); err != nil {
		return model.Signature{}, err
	}

	fields := []struct {
		message   string
		target    *string
		validator func(string) error
	}{
		{message: "Full name", target: &sig.Employee.Name, validator: required("name")},
		{message: "Position", target: &sig.Employee.Position},
		{message: "Email", target: &sig.Employee.Email, validator: optionalEmail},
		{message: "Phone", target: &sig.Employee.Phone},
		{message: "Company", target: &sig.Company.Name, validator: required("company")},
		{message: "Website", target: &sig.Company.Website},
	}
	for _, field := range fields {
		value, err := d.Input(ctx, InputConfig{
			Message:   field.message,
			Default:   *field.target,
			Validator: field.validator,
		})
		if err != nil {
			return model.Signature{}, err
		}
		*field.target = strings.TrimSpace(value)
	}

	variant, err := w.selectVariant(ctx, sig.Variant)
	if err != nil {
		return model.Signature{}, err
	}
	sig.Variant = variant

	show, err := w.selectElements(ctx, seed.Show)
	if err != nil {
		return model.Signature{}, err
	}
	sig.Show = show

	if layout, ok := email.LayoutFor(variant); ok && layout.Disclaimer {
		text, err := d.TextArea(ctx, TextAreaConfig{
			Message: "Disclaimer",
			Default: sig.Company.Disclaimer,
			Help:    "Shown under the " + layout.Name + " layout",
		})
		if err != nil {
			return model.Signature{}, err
		}
		sig.Company.Disclaimer = strings.TrimSpace(text)
	}

	ok, err := d.Confirm(ctx, ConfirmConfig{Message: "Render this signature?", Default: true})
	if err != nil {
		return model.Signature{}, err
	}
	if !ok {
		return model.Signature{}, ErrAborted
	}
	return sig, nil
}

func (w *SignatureWizard) selectVariant(ctx context.Context, current model.TemplateID) (model.TemplateID, error) {
	ids := model.AllTemplateIDs()
	options := make([]string, len(ids))
	defaultIndex := 0
	for i, id := range ids {
		options[i] = id.String()
		if layout, ok := email.LayoutFor(id); ok && layout.Description != "" {
			options[i] = id.String() + " (" + layout.Description + ")"
		}
		if id == current {
			defaultIndex = i
		}
	}
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message:      "Layout",
		Options:      options,
		DefaultIndex: defaultIndex,
		PageSize:     len(options),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(ids) {
		return model.DefaultTemplateID, nil
	}
	return ids[idx], nil
}

func (w *SignatureWizard) selectElements(ctx context.Context, current model.ShowElements) (model.ShowElements, error) {
	elements := model.Elements()
	options := make([]string, len(elements))
	var defaults []int
	for i, element := range elements {
		options[i] = string(element)
		if current.Enabled(element) {
			defaults = append(defaults, i)
		}
	}
	picked, err := w.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Blocks to show",
		Options:  options,
		Defaults: defaults,
		PageSize: len(options),
	})
	if err != nil {
		return model.ShowElements{}, err
	}
	show := model.NoneShown()
	for _, idx := range picked {
		if idx >= 0 && idx < len(elements) {
			show.Set(elements[idx], true)
		}
	}
	return show, nil
}

// QuoteWizard asks for a package and a user count.
type QuoteWizard struct {
	driver Driver
}

// NewQuoteWizard builds a wizard over driver.
func NewQuoteWizard(driver Driver) *QuoteWizard {
	return &QuoteWizard{driver: driver}
}

// Collect returns the chosen package id and user count.
func (w *QuoteWizard) Collect(ctx context.Context, calc *pricing.Calculator) (string, int, error) {
	if w == nil || w.driver == nil {
		return "", 0, errors.New("prompt: driver is required")
	}
	if calc == nil {
		return "", 0, errors.New("prompt: calculator is required")
	}
	packages := calc.Packages()
	if len(packages) == 0 {
		return "", 0, errors.New("prompt: catalog has no packages")
	}

	defaultID := ""
	if pkg, err := calc.DefaultPackage(); err == nil {
		defaultID = pkg.ID
	}
	options := make([]string, len(packages))
	defaultIndex := 0
	for i, pkg := range packages {
		options[i] = fmt.Sprintf("%s (from %s)", pkg.Name, pkg.BasePrice.Display())
		if pkg.ID == defaultID {
			defaultIndex = i
		}
	}

	idx, err := w.driver.Select(ctx, SelectConfig{Message: "Package", Options: options, DefaultIndex: defaultIndex})
	if err != nil {
		return "", 0, err
	}
	if idx < 0 || idx >= len(packages) {
		idx = defaultIndex
	}

	raw, err := w.driver.Input(ctx, InputConfig{Message: "Users", Default: "1", Validator: positiveInt})
	if err != nil {
		return "", 0, err
	}
	users, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", 0, fmt.Errorf("prompt: users: %w", err)
	}
	return packages[idx].ID, users, nil
}

func required(field string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func optionalEmail(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("invalid email address %q", value)
	}
	return nil
}

func positiveInt(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a whole number of at least 1")
	}
	return nil
}
