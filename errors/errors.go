package errors

import "fmt"

var (
	// ErrValidation rejects malformed or incomplete input before any
	// persistence attempt is made.
	ErrValidation = fmt.Errorf("validation failed")

	// ErrNotFound signals an operation referencing an unknown entity id.
	ErrNotFound = fmt.Errorf("entity not found")

	// ErrInvalidTransition signals a status update violating the
	// forward-only rule. The stored record is left unchanged.
	ErrInvalidTransition = fmt.Errorf("status transition not allowed")

	// ErrPersistence signals that the durable store was unreachable or
	// rejected a write. No broadcast happens after it; the producer
	// decides whether to retry.
	ErrPersistence = fmt.Errorf("durable store failure")

	// ErrUnknownEventKind signals an envelope whose kind this build
	// does not recognize.
	ErrUnknownEventKind = fmt.Errorf("unknown event kind")
)
