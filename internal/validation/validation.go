// Package validation implements the per-field checks behind the song form.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"songcatalog/internal/models"
)

// FieldError describes why a single field value was rejected
type FieldError struct {
	Field   models.Field
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Errors maps field names to messages. An empty map means the input is valid.
type Errors map[string]string

// Valid reports whether no field failed validation
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Error implements error so a failed form can travel as an error value
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range models.Fields {
		if msg, ok := e[f.String()]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// restricted fields accept only letters, digits and whitespace
func restricted(field models.Field) bool {
	return field == models.FieldTitle || field == models.FieldArtist
}

// ValidateField checks one field value. It returns nil when the value is accepted.
func ValidateField(field models.Field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s is required", field.Label()),
		}
	}

	if restricted(field) && !plainText(value) {
		return &FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s can only contain letters, numbers, and spaces", field.Label()),
		}
	}

	return nil
}

// ValidateSong checks every field independently and collects the failures
func ValidateSong(input models.SongInput) Errors {
	errs := make(Errors)
	for _, field := range models.Fields {
		if fe := ValidateField(field, input.Value(field)); fe != nil {
			errs[field.String()] = fe.Message
		}
	}
	return errs
}

func plainText(value string) bool {
	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
