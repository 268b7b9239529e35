package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error taxonomy used across the engine. Callers
// branch on these with errors.Is; ValidationError carries the detail.
var (
	// ErrInvalidModelData indicates a model failed field validation on
	// create or update.
	ErrInvalidModelData = errors.New("invalid model data")

	// ErrInvalidParameterData indicates at least one parameter in a bulk
	// set failed validation. Nothing is stored when this is returned.
	ErrInvalidParameterData = errors.New("invalid parameter data")

	// ErrModelNotFound indicates an operation referenced an unknown model id.
	ErrModelNotFound = errors.New("model not found")

	// ErrNotFound is the generic not-found error for update/delete on an
	// unknown id.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes a single violated constraint. It unwraps to
// ErrInvalidModelData or ErrInvalidParameterData so callers can classify it
// without inspecting the message.
type ValidationError struct {
	Kind   error
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s %s", e.Kind, e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func invalidModel(field, reason string) error {
	return &ValidationError{Kind: ErrInvalidModelData, Entity: "model", Field: field, Reason: reason}
}

func invalidParameter(name, field, reason string) error {
	return &ValidationError{Kind: ErrInvalidParameterData, Entity: "parameter " + name, Field: field, Reason: reason}
}
