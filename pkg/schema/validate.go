package schema

import (
	"slices"
)

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// ValidatePresent checks the schema fields that data actually carries. Missing fields
// and keys unknown to the schema are ignored.
func ValidatePresent(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	// Sorted so that aggregate messages are stable.
	keys := make([]string, 0, len(schema))
	for key := range schema {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	var errs []error
	for _, key := range keys {
		value, exists := data[key]
		if !exists {
			continue
		}
		if err := schema[key].Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
