package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Shape represents the dimensions of a dense matrix.
type Shape struct {
	Rows int
	Cols int
}

// NumElements returns the total number of entries.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Validate checks that both dimensions are positive.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return errors.Wrapf(ErrShape, "invalid shape %s (dimensions must be > 0)", s)
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// IsSquare reports whether Rows == Cols.
func (s Shape) IsSquare() bool {
	return s.Rows == s.Cols
}

// String renders the shape as "(rows×cols)".
func (s Shape) String() string {
	return fmt.Sprintf("(%d×%d)", s.Rows, s.Cols)
}
