package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// Pipeline step failures. Adapters wrap their causes around these
	// sentinels so callers can branch with errors.Is.
	ErrExtraction  = errors.New("text extraction failed")
	ErrAIService   = errors.New("ai service call failed")
	ErrPersistence = errors.New("persistence failed")

	// Document state machine
	ErrTerminalStatus    = errors.New("document is in a terminal status")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrInvalidExecContext = errors.New("invalid query execution context")
)
