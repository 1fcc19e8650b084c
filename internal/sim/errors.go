package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/metrics"
)

// FrameError wraps a collaborator failure with the frame it happened in.
type FrameError struct {
	Frame   int
	Phase   metrics.Phase
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (%s): %v", e.Frame, e.Phase, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}

func collaboratorFailure(frame int, phase metrics.Phase, err error) error {
	if !errors.Is(err, bench.ErrCollaborator) {
		err = fmt.Errorf("%w: %v", bench.ErrCollaborator, err)
	}
	return &FrameError{Frame: frame, Phase: phase, Wrapped: err}
}
