package ports

import "github.com/aretw0/voyager/pkg/domain"

// DocumentValidator checks a document against the document schema.
// Failures wrap domain.ErrSchemaInvalid.
type DocumentValidator interface {
	// ValidateJSON checks raw document bytes as received, before decoding.
	ValidateJSON(data []byte) error
	// Validate checks a document built in memory, in its serialized form.
	Validate(doc *domain.Document) error
}
