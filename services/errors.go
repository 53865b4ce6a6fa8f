package services

import (
	"errors"
	"fmt"
	"strings"
)

// Client-facing messages.
const (
	MsgMissingFields = "Missing required fields"
	MsgInvalidFields = "Invalid field values"
	MsgUnauthorized  = "Unauthorized: Agent ID not found"
	MsgConflict      = "Policy already exists for this PAN number"
	MsgInternal      = "Internal server error"
)

var (
	// ErrUnauthorized is returned when a create request carries no agent identifier.
	ErrUnauthorized = errors.New(MsgUnauthorized)

	// ErrConflict is returned when a policy with the same PAN is already stored.
	ErrConflict = errors.New(MsgConflict)
)

// ValidationError reports request fields that are missing or hold invalid values.
// Details is nil for missing fields and maps field to message for invalid values.
type ValidationError struct {
	Message string
	Fields  []string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// InternalError wraps a storage or other unexpected failure. Its message is
// opaque; the cause is available through errors.Unwrap and is logged where it occurs.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return MsgInternal
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
