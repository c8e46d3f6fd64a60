package nn

import (
	"github.com/born-ml/microdiff/internal/autodiff"
	"github.com/born-ml/microdiff/internal/optim"
)

// ReLU applies max(0, x) element-wise.
type ReLU struct{}

// NewReLU creates a ReLU activation.
func NewReLU() *ReLU { return &ReLU{} }

// Forward applies ReLU.
func (*ReLU) Forward(_ *autodiff.MatrixGraph, input *autodiff.Matrix) (*autodiff.Matrix, error) {
	return input.ReLU()
}

// Parameters returns nil.
func (*ReLU) Parameters() []*optim.Parameter { return nil }

// Sigmoid applies 1 / (1 + exp(-x)) element-wise.
type Sigmoid struct{}

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid() *Sigmoid { return &Sigmoid{} }

// Forward applies Sigmoid.
func (*Sigmoid) Forward(_ *autodiff.MatrixGraph, input *autodiff.Matrix) (*autodiff.Matrix, error) {
	return input.Sigmoid()
}

// Parameters returns nil.
func (*Sigmoid) Parameters() []*optim.Parameter { return nil }

// Tanh applies tanh(x) element-wise.
type Tanh struct{}

// NewTanh creates a Tanh activation.
func NewTanh() *Tanh { return &Tanh{} }

// Forward applies Tanh.
func (*Tanh) Forward(_ *autodiff.MatrixGraph, input *autodiff.Matrix) (*autodiff.Matrix, error) {
	return input.Tanh()
}

// Parameters returns nil.
func (*Tanh) Parameters() []*optim.Parameter { return nil }
