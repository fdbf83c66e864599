package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for field %q: %s", e.Field, e.Message)
}

// Validator accumulates field checks so every misconfigured value is
// reported in one pass.
type Validator struct {
	errors []ValidationError
}

// NewValidator creates an empty validator.
func NewValidator() *Validator {
	return &Validator{}
}

// AddError records a custom validation failure.
func (v *Validator) AddError(field, message string) *Validator {
	v.errors = append(v.errors, ValidationError{Field: field, Message: message})
	return v
}

// RequireNonEmpty checks that a string field is set.
func (v *Validator) RequireNonEmpty(field, value string) *Validator {
	if value == "" {
		v.AddError(field, "value cannot be empty")
	}
	return v
}

// RequirePositive checks that an integer field is greater than zero.
func (v *Validator) RequirePositive(field string, value int) *Validator {
	if value <= 0 {
		v.AddError(field, fmt.Sprintf("value must be positive, got %d", value))
	}
	return v
}

// ValidateRange checks that an integer field is within [min, max].
func (v *Validator) ValidateRange(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.AddError(field, fmt.Sprintf("value must be between %d and %d, got %d", min, max, value))
	}
	return v
}

// ValidateFloatRange checks that a float field is within [min, max].
func (v *Validator) ValidateFloatRange(field string, value, min, max float64) *Validator {
	if value < min || value > max {
		v.AddError(field, fmt.Sprintf("value must be between %.2f and %.2f, got %.2f", min, max, value))
	}
	return v
}

// ValidatePort checks that a port number is valid (1-65535).
func (v *Validator) ValidatePort(field string, port int) *Validator {
	return v.ValidateRange(field, port, 1, 65535)
}

// ValidateDBNumber checks a Redis database number (0-15).
func (v *Validator) ValidateDBNumber(field string, db int) *Validator {
	return v.ValidateRange(field, db, 0, 15)
}

// ValidateOneOf checks that a string value is one of the allowed options.
func (v *Validator) ValidateOneOf(field string, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if a == value {
			return v
		}
	}
	return v.AddError(field, fmt.Sprintf("value must be one of %v, got %q", allowed, value))
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns every recorded failure.
func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// Error combines all failures into one error, or returns nil.
func (v *Validator) Error() error {
	if !v.HasErrors() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, e := range v.errors {
		fmt.Fprintf(&sb, "  - %s: %s\n", e.Field, e.Message)
	}
	return errors.New(sb.String())
}
