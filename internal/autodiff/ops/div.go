package ops

import (
	"github.com/born-ml/microdiff/internal/tensor"
	"github.com/pkg/errors"
)

// DivScalar implements lhs / c for a non-zero constant c.
//
// Backward pass: d(x/c)/dx = 1/c.
var DivScalar = &Rule[float64]{
	Kind:    Div,
	Accepts: NumberOnly,
	Forward: func(lhs float64, rhs Operand[float64]) (float64, error) {
		if err := checkDivisor(rhs.Number()); err != nil {
			return 0, err
		}
		return lhs / rhs.Number(), nil
	},
	BackwardLHS: func(_ float64, rhs Operand[float64], upstream float64) (float64, error) {
		return upstream / rhs.Number(), nil
	},
}

// DivMatrix divides every entry by a non-zero constant.
var DivMatrix = &Rule[*tensor.Matrix]{
	Kind:    Div,
	Accepts: NumberOnly,
	Forward: func(lhs *tensor.Matrix, rhs Operand[*tensor.Matrix]) (*tensor.Matrix, error) {
		if err := checkDivisor(rhs.Number()); err != nil {
			return nil, err
		}
		return lhs.Scale(1 / rhs.Number()), nil
	},
	BackwardLHS: func(_ *tensor.Matrix, rhs Operand[*tensor.Matrix], upstream *tensor.Matrix) (*tensor.Matrix, error) {
		return upstream.Scale(1 / rhs.Number()), nil
	},
}

func checkDivisor(c float64) error {
	if c == 0 {
		return errors.Wrap(ErrValue, "Div: division by zero")
	}
	return nil
}
