// Package openapi validates scene documents against the document schema, expressed as
// an OpenAPI 3 component schema and checked with kin-openapi.
package openapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/voyager/pkg/domain"
)

//go:embed document.yaml
var documentSpec []byte

// SchemaName is the component schema validated against.
const SchemaName = "Document"

// Validator implements ports.DocumentValidator.
type Validator struct {
	schema *openapi3.Schema
}

// New loads and checks the embedded schema.
func New() (*Validator, error) {
	loader := openapi3.NewLoader()
	api, err := loader.LoadFromData(documentSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load document schema: %w", err)
	}
	if err := api.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("document schema is invalid: %w", err)
	}
	ref, ok := api.Components.Schemas[SchemaName]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("document schema has no %q component", SchemaName)
	}
	return &Validator{schema: ref.Value}, nil
}

// MustNew is like New but panics on error. The schema is embedded, so an error is a
// build defect.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks doc in its serialized form.
func (v *Validator) Validate(doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaInvalid, err)
	}
	return v.ValidateJSON(data)
}

// ValidateJSON checks a raw JSON document. Every violation is reported.
func (v *Validator) ValidateJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaInvalid, err)
	}
	if err := v.schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaInvalid, err)
	}
	return nil
}
