package ops

import (
	"math"

	"github.com/born-ml/microdiff/internal/tensor"
)

// TanhGradientFloor is the smallest derivative Tanh reports, so that
// saturated units never produce an exactly zero gradient.
const TanhGradientFloor = 1e-10

// Activation rules. Each exists for both value flavors; on matrices the
// function is applied element-wise.
var (
	// SigmoidScalar and SigmoidMatrix implement σ(x) = 1 / (1 + exp(-x)),
	// with dσ/dx = σ(x) * (1 - σ(x)).
	SigmoidScalar, SigmoidMatrix = elementwise(Sigmoid, sigmoid, sigmoidGrad)

	// TanhScalar and TanhMatrix implement tanh(x), with
	// d(tanh(x))/dx = max(1 - tanh²(x), TanhGradientFloor).
	TanhScalar, TanhMatrix = elementwise(Tanh, math.Tanh, tanhGrad)

	// ReLUScalar and ReLUMatrix implement max(0, x), with derivative
	// 1 if x > 0, else 0.
	ReLUScalar, ReLUMatrix = elementwise(ReLU, relu, reluGrad)
)

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func sigmoidGrad(x float64) float64 {
	s := sigmoid(x)
	return s * (1 - s)
}

func tanhGrad(x float64) float64 {
	t := math.Tanh(x)
	return math.Max(1-t*t, TanhGradientFloor)
}

func relu(x float64) float64 {
	return math.Max(0, x)
}

func reluGrad(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// elementwise builds the scalar and matrix rules of a unary function f with
// derivative df.
func elementwise(kind Kind, f, df func(float64) float64) (*Rule[float64], *Rule[*tensor.Matrix]) {
	scalar := &Rule[float64]{
		Kind:    kind,
		Accepts: Unary,
		Forward: func(lhs float64, _ Operand[float64]) (float64, error) {
			return f(lhs), nil
		},
		BackwardLHS: func(lhs float64, _ Operand[float64], upstream float64) (float64, error) {
			return df(lhs) * upstream, nil
		},
	}
	matrix := &Rule[*tensor.Matrix]{
		Kind:    kind,
		Accepts: Unary,
		Forward: func(lhs *tensor.Matrix, _ Operand[*tensor.Matrix]) (*tensor.Matrix, error) {
			return lhs.Apply(f), nil
		},
		BackwardLHS: func(lhs *tensor.Matrix, _ Operand[*tensor.Matrix], upstream *tensor.Matrix) (*tensor.Matrix, error) {
			return lhs.Apply(df).MulElem(upstream)
		},
	}
	return scalar, matrix
}
