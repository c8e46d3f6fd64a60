package ops

import (
	"math"

	"github.com/born-ml/microdiff/internal/tensor"
)

// ExpScalar implements exp(x).
//
// Backward pass: d(exp(x))/dx = exp(x).
var ExpScalar = &Rule[float64]{
	Kind:    Exp,
	Accepts: Unary,
	Forward: func(lhs float64, _ Operand[float64]) (float64, error) {
		return math.Exp(lhs), nil
	},
	BackwardLHS: func(lhs float64, _ Operand[float64], upstream float64) (float64, error) {
		return math.Exp(lhs) * upstream, nil
	},
}

// ExpMatrix implements the element-wise exponential.
var ExpMatrix = &Rule[*tensor.Matrix]{
	Kind:    Exp,
	Accepts: Unary,
	Forward: func(lhs *tensor.Matrix, _ Operand[*tensor.Matrix]) (*tensor.Matrix, error) {
		return lhs.Exp(), nil
	},
	BackwardLHS: func(lhs *tensor.Matrix, _ Operand[*tensor.Matrix], upstream *tensor.Matrix) (*tensor.Matrix, error) {
		return upstream.MulElem(lhs.Exp())
	},
}
