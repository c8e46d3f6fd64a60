package nn

import (
	"math/rand"

	"github.com/born-ml/microdiff/internal/autodiff"
	"github.com/born-ml/microdiff/internal/optim"
	"github.com/born-ml/microdiff/internal/tensor"
	"github.com/pkg/errors"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W + b
// where:
//   - x is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias row with shape [1, out_features], added to every row
//   - y is the output with shape [batch_size, out_features]
//
// The bias is spread over the batch as ones[batch_size, 1] @ b, so its
// gradient is the column sum of the upstream gradient.
//
// Example:
//
//	layer, _ := nn.NewLinear("hidden", 4, 8, rand.New(rand.NewSource(1)))
//	out, err := layer.Forward(g, x) // shape: [batch, 8]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *optim.Parameter
	bias        *optim.Parameter
}

// NewLinear creates a new Linear layer whose parameters are named
// "<name>.weight" and "<name>.bias".
//
// Weights are initialized using Xavier/Glorot uniform distribution.
// Biases are initialized to zeros.
func NewLinear(name string, inFeatures, outFeatures int, rng *rand.Rand) (*Linear, error) {
	w, err := Xavier(inFeatures, outFeatures, rng)
	if err != nil {
		return nil, errors.WithMessagef(err, "linear %q", name)
	}
	b, err := tensor.Zeros(1, outFeatures)
	if err != nil {
		return nil, errors.WithMessagef(err, "linear %q", name)
	}

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      optim.NewParameter(name+".weight", w),
		bias:        optim.NewParameter(name+".bias", b),
	}, nil
}

// Forward computes the output of the linear layer.
func (l *Linear) Forward(g *autodiff.MatrixGraph, input *autodiff.Matrix) (*autodiff.Matrix, error) {
	shape := input.Value().Shape()
	if shape.Cols != l.inFeatures {
		return nil, errors.Wrapf(tensor.ErrShape, "linear: expected %d input features, got input %s", l.inFeatures, shape)
	}

	xw, err := input.MatMul(l.weight.Bind(g))
	if err != nil {
		return nil, err
	}
	ones, err := tensor.Ones(shape.Rows, 1)
	if err != nil {
		return nil, err
	}
	bias, err := g.Leaf(ones).MatMul(l.bias.Bind(g))
	if err != nil {
		return nil, err
	}
	return xw.Add(bias)
}

// Parameters returns the weight and bias.
func (l *Linear) Parameters() []*optim.Parameter {
	return []*optim.Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *optim.Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *optim.Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
