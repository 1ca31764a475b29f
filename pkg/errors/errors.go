package errors

import (
	"fmt"
	"strings"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// UserErrorDetail is a single field-level error reported by Shopify on a mutation.
type UserErrorDetail struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// ErrUserError is returned when Shopify rejects a mutation with field-level
// userErrors. The caller may correct the input and resubmit.
type ErrUserError struct {
	Details []UserErrorDetail
}

func (e *ErrUserError) Error() string {
	if len(e.Details) == 0 {
		return "shopify user error"
	}
	msgs := make([]string, len(e.Details))
	for i, d := range e.Details {
		if len(d.Field) > 0 {
			msgs[i] = fmt.Sprintf("%s: %s", strings.Join(d.Field, "."), d.Message)
		} else {
			msgs[i] = d.Message
		}
	}
	return "shopify user errors: " + strings.Join(msgs, "; ")
}
