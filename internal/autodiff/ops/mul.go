package ops

import "github.com/born-ml/microdiff/internal/tensor"

// MulScalar implements lhs * rhs over float64 values.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = upstream * b
//   - d(a*b)/db = a, so grad_b = upstream * a
var MulScalar = &Rule[float64]{
	Kind:    Mul,
	Accepts: NumberOrNode,
	Forward: func(lhs float64, rhs Operand[float64]) (float64, error) {
		return lhs * scalarOf(rhs), nil
	},
	BackwardLHS: func(_ float64, rhs Operand[float64], upstream float64) (float64, error) {
		return scalarOf(rhs) * upstream, nil
	},
	BackwardRHS: func(lhs float64, _ Operand[float64], upstream float64) (float64, error) {
		return lhs * upstream, nil
	},
}

// MulMatrix implements the element-wise product lhs ⊙ rhs.
//
// A number rhs scales every entry.
var MulMatrix = &Rule[*tensor.Matrix]{
	Kind:    Mul,
	Accepts: NumberOrNode,
	Forward: func(lhs *tensor.Matrix, rhs Operand[*tensor.Matrix]) (*tensor.Matrix, error) {
		if rhs.Kind() == Number {
			return lhs.Scale(rhs.Number()), nil
		}
		return lhs.MulElem(rhs.Value())
	},
	BackwardLHS: func(_ *tensor.Matrix, rhs Operand[*tensor.Matrix], upstream *tensor.Matrix) (*tensor.Matrix, error) {
		if rhs.Kind() == Number {
			return upstream.Scale(rhs.Number()), nil
		}
		return rhs.Value().MulElem(upstream)
	},
	BackwardRHS: func(lhs *tensor.Matrix, _ Operand[*tensor.Matrix], upstream *tensor.Matrix) (*tensor.Matrix, error) {
		return lhs.MulElem(upstream)
	},
}
