package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCorpus indicates a loaded work violates the data model invariants.
	// It is a configuration failure and is reported before any search runs.
	ErrInvalidCorpus = errors.New("invalid corpus")

	// ErrUnsupportedFormat indicates a corpus payload format that no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported corpus format")

	// ErrCorpusUnavailable indicates no corpus snapshot has been loaded yet.
	ErrCorpusUnavailable = errors.New("corpus unavailable")
)

// CorpusError describes which work in a payload broke an invariant.
type CorpusError struct {
	// Index is the zero-based position of the work in the payload.
	Index int

	// Field names the offending field, e.g. "analysis.name".
	Field string

	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *CorpusError) Error() string {
	return fmt.Sprintf("invalid corpus: work %d: %s %s", e.Index, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidCorpus.
func (e *CorpusError) Unwrap() error {
	return ErrInvalidCorpus
}

// SettingsError describes an unusable configuration value.
type SettingsError struct {
	Key    string
	Reason string
}

// Error implements the error interface.
func (e *SettingsError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Key, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *SettingsError) Unwrap() error {
	return ErrInvalidInput
}
