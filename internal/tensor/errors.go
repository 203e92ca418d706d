package tensor

import "github.com/pkg/errors"

// Error taxonomy shared by the array layer, the backends and autodiff.
// Returned errors wrap one of these; test with errors.Is.
var (
	// ErrShapeMismatch reports operand shapes that are incompatible for the
	// requested elementwise or matrix operation.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidShape reports a malformed shape (a non-positive dimension).
	ErrInvalidShape = errors.New("invalid shape")

	// ErrInvalidArgument reports an argument of the wrong kind, e.g. a
	// non-scalar exponent.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDivisionByZero is only returned when strict division is enabled.
	ErrDivisionByZero = errors.New("division by zero")
)
