package bench

import "errors"

// Failure classes for the harness. None of them is retried.
var (
	// ErrConfiguration indicates invalid input, detected before any window or
	// physics world is created.
	ErrConfiguration = errors.New("bench: invalid configuration")

	// ErrResourceAcquisition indicates the window, the physics world or one of
	// its bodies could not be created.
	ErrResourceAcquisition = errors.New("bench: resource acquisition failed")

	// ErrCollaborator indicates a per-frame engine or renderer call failed.
	ErrCollaborator = errors.New("bench: collaborator call failed")
)
