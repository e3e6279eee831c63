package validation

import (
	"sort"
	"strings"

	domainerrors "finances/internal/errors"
)

// Validator collects field errors
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records the first error reported for field.
func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; ok {
		return
	}
	v.Errors[field] = message
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// NotBlank rejects strings that are empty once trimmed.
func (v *Validator) NotBlank(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// Err returns nil when valid, otherwise an INVALID_REQUEST error listing the
// fields in alphabetical order.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v.Errors[field])
	}
	return domainerrors.ErrInvalidRequest.Withf("invalid request: %s", strings.Join(parts, "; "))
}
