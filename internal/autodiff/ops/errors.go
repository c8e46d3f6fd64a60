package ops

import "github.com/pkg/errors"

// Errors returned by operation dispatch.
var (
	// ErrType reports an operand of the wrong kind, or an operation that is
	// not defined for the operand's value flavor.
	ErrType = errors.New("type error")

	// ErrValue reports a missing or superfluous operand, or an operand value
	// outside the operation's domain.
	ErrValue = errors.New("value error")
)
