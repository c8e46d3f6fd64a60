package ops

import (
	"math"

	"github.com/born-ml/microdiff/internal/tensor"
	"github.com/pkg/errors"
)

// PowScalar implements lhs^c for a constant exponent c.
//
// Backward pass: d(x^c)/dx = c * x^(c-1), and 0 for c = 0 (x^0 is constant,
// including at x = 0 where x^-1 is infinite).
var PowScalar = &Rule[float64]{
	Kind:    Pow,
	Accepts: NumberOnly,
	Forward: func(lhs float64, rhs Operand[float64]) (float64, error) {
		return math.Pow(lhs, rhs.Number()), nil
	},
	BackwardLHS: func(lhs float64, rhs Operand[float64], upstream float64) (float64, error) {
		c := rhs.Number()
		if c == 0 {
			return 0, nil
		}
		return c * math.Pow(lhs, c-1) * upstream, nil
	},
}

// PowMatrix raises every entry to a constant exponent.
var PowMatrix = &Rule[*tensor.Matrix]{
	Kind:    Pow,
	Accepts: NumberOnly,
	Forward: func(lhs *tensor.Matrix, rhs Operand[*tensor.Matrix]) (*tensor.Matrix, error) {
		return lhs.PowScalar(rhs.Number()), nil
	},
	BackwardLHS: func(lhs *tensor.Matrix, rhs Operand[*tensor.Matrix], upstream *tensor.Matrix) (*tensor.Matrix, error) {
		c := rhs.Number()
		if c == 0 {
			if !lhs.Shape().Equal(upstream.Shape()) {
				return nil, errors.Wrapf(tensor.ErrShape, "pow: upstream %s, operand %s", upstream.Shape(), lhs.Shape())
			}
			return lhs.ZerosLike(), nil
		}
		return lhs.PowScalar(c - 1).Scale(c).MulElem(upstream)
	},
}
