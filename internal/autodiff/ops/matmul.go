package ops

import "github.com/born-ml/microdiff/internal/tensor"

// MatMulMatrix implements the matrix product lhs @ rhs.
//
// Backward pass:
//   - d(A@B)/dA = upstream @ B^T
//   - d(A@B)/dB = A^T @ upstream
//
// Both operands must be values; there is no scalar flavor.
var MatMulMatrix = &Rule[*tensor.Matrix]{
	Kind:    MatMul,
	Accepts: ValueOnly,
	Forward: func(lhs *tensor.Matrix, rhs Operand[*tensor.Matrix]) (*tensor.Matrix, error) {
		return lhs.MatMul(rhs.Value())
	},
	BackwardLHS: func(_ *tensor.Matrix, rhs Operand[*tensor.Matrix], upstream *tensor.Matrix) (*tensor.Matrix, error) {
		return upstream.MatMul(rhs.Value().T())
	},
	BackwardRHS: func(lhs *tensor.Matrix, _ Operand[*tensor.Matrix], upstream *tensor.Matrix) (*tensor.Matrix, error) {
		return lhs.T().MatMul(upstream)
	},
}
