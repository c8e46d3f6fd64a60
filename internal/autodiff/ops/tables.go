package ops

import "github.com/born-ml/microdiff/internal/tensor"

var (
	scalarRules = newTable("scalar",
		AddScalar, MulScalar, PowScalar, DivScalar, ExpScalar,
		SigmoidScalar, TanhScalar, ReLUScalar,
	)
	matrixRules = newTable("matrix",
		AddMatrix, MulMatrix, MatMulMatrix, PowMatrix, DivMatrix, ExpMatrix,
		SigmoidMatrix, TanhMatrix, ReLUMatrix,
	)
)

// ScalarRules returns the rule table for float64 values. MatMul is not
// defined for scalars.
func ScalarRules() *Table[float64] {
	return scalarRules
}

// MatrixRules returns the rule table for dense matrices.
func MatrixRules() *Table[*tensor.Matrix] {
	return matrixRules
}
