package ops

import "github.com/born-ml/microdiff/internal/tensor"

// AddScalar implements lhs + rhs over float64 values.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = upstream
//   - d(a+b)/db = 1, so grad_b = upstream
var AddScalar = &Rule[float64]{
	Kind:    Add,
	Accepts: NumberOrNode,
	Forward: func(lhs float64, rhs Operand[float64]) (float64, error) {
		return lhs + scalarOf(rhs), nil
	},
	BackwardLHS: func(_ float64, _ Operand[float64], upstream float64) (float64, error) {
		return upstream, nil
	},
	BackwardRHS: func(_ float64, _ Operand[float64], upstream float64) (float64, error) {
		return upstream, nil
	},
}

// AddMatrix implements lhs + rhs over matrices.
//
// A number rhs is broadcast to the shape of lhs. Two matrices must have the
// same shape. The gradient w.r.t. either operand is upstream ⊙ ones.
var AddMatrix = &Rule[*tensor.Matrix]{
	Kind:    Add,
	Accepts: NumberOrNode,
	Forward: func(lhs *tensor.Matrix, rhs Operand[*tensor.Matrix]) (*tensor.Matrix, error) {
		if rhs.Kind() == Number {
			return lhs.AddScalar(rhs.Number()), nil
		}
		return lhs.Add(rhs.Value())
	},
	BackwardLHS: func(lhs *tensor.Matrix, _ Operand[*tensor.Matrix], upstream *tensor.Matrix) (*tensor.Matrix, error) {
		return upstream.MulElem(lhs.OnesLike())
	},
	BackwardRHS: func(_ *tensor.Matrix, rhs Operand[*tensor.Matrix], upstream *tensor.Matrix) (*tensor.Matrix, error) {
		return upstream.MulElem(rhs.Value().OnesLike())
	},
}

// scalarOf returns the float64 carried by a number or value operand.
func scalarOf(o Operand[float64]) float64 {
	if o.Kind() == Number {
		return o.Number()
	}
	return o.Value()
}
