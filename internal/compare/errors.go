package compare

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTypeMismatch is returned when only one operand is an autodiff variable.
	// It aborts the comparison instead of counting as "not equal".
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNegativePrecision is returned for a negative or NaN tolerance.
	ErrNegativePrecision = errors.New("precision must be non-negative")
)

// MismatchError reports a failed equality or inequality check.
type MismatchError struct {
	// Path locates the first mismatching pair inside nested values, e.g. "[1][0]".
	// It is empty for top-level operands.
	Path string

	// Reason describes the mismatch.
	Reason string

	// MaxError is the tensor error statistic when one was computed, NaN otherwise.
	MaxError float64
}

// Error implements error.
func (e *MismatchError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("at %s: %s", e.Path, e.Reason)
}
