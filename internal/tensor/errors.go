package tensor

import "github.com/pkg/errors"

// ErrShape is returned when input data is ragged or empty, a dimension is
// not positive, or two operands have incompatible shapes.
var ErrShape = errors.New("shape error")

// shapeMismatch wraps ErrShape for a binary operation on incompatible operands.
func shapeMismatch(op string, a, b Shape) error {
	return errors.Wrapf(ErrShape, "%s: incompatible shapes %s and %s", op, a, b)
}
