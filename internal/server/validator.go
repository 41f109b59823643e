package server

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// OpenAPIDocument returns the embedded API description served at
// /openapi.yaml.
func OpenAPIDocument() []byte {
	return append([]byte(nil), openAPIDocument...)
}

// SchemaValidator validates JSON payloads against component schemas of the
// embedded OpenAPI document.
type SchemaValidator struct {
	doc *openapi3.T
}

// NewSchemaValidator loads and validates the embedded document.
func NewSchemaValidator(ctx context.Context) (*SchemaValidator, error) {
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("server: load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("server: validate openapi document: %w", err)
	}
	return &SchemaValidator{doc: doc}, nil
}

// ValidateRequest checks payload (decoded with encoding/json) against the named
// component schema.
func (v *SchemaValidator) ValidateRequest(schema string, payload any) error {
	if v == nil || v.doc == nil || v.doc.Components == nil {
		return fmt.Errorf("server: schema validator is not initialised")
	}
	ref, ok := v.doc.Components.Schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return fmt.Errorf("server: unknown schema %q", schema)
	}
	return ref.Value.VisitJSON(payload)
}
