package bench

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for a malformed repeat count, a nil pool or
	// candidate, or arguments that do not match the candidate's signature.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCandidateFailure marks an error or panic raised by a candidate during
	// its timed loop.
	ErrCandidateFailure = errors.New("candidate failed")

	// ErrPoolFailure marks a pool that could not accept or complete work.
	ErrPoolFailure = errors.New("pool failure")

	// ErrDoubleResolution is returned when Wait is called on an already
	// resolved PendingResult.
	ErrDoubleResolution = errors.New("pending result already resolved")
)

// CandidateError describes a candidate that failed on a specific iteration.
type CandidateError struct {
	Label     string
	Iteration int // 1-based
	Err       error
}

func (e *CandidateError) Error() string {
	return fmt.Sprintf("candidate %q failed on iteration %d: %v", e.Label, e.Iteration, e.Err)
}

// Unwrap exposes both the failure class and the underlying cause to errors.Is/As.
func (e *CandidateError) Unwrap() []error {
	return []error{ErrCandidateFailure, e.Err}
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// poolFailure wraps err with ErrPoolFailure unless it already carries a
// classification from this package.
func poolFailure(err error) error {
	if errors.Is(err, ErrCandidateFailure) || errors.Is(err, ErrPoolFailure) || errors.Is(err, ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPoolFailure, err)
}
