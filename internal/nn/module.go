// Package nn implements neural network modules on top of matrix graphs.
//
// This package provides building blocks for constructing neural networks:
//   - Module interface: Base interface for all NN components
//   - Linear: Fully connected layer
//   - Activations: ReLU, Sigmoid, Tanh
//   - MSELoss: mean squared error
//   - Sequential: Container for stacking layers
//
// Modules hold optim.Parameters and bind them into the graph passed to
// Forward, so a model can be evaluated in a fresh graph every iteration.
package nn

import (
	"github.com/born-ml/microdiff/internal/autodiff"
	"github.com/born-ml/microdiff/internal/optim"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Record the module's computation on input in g
//   - Parameters: Return all trainable parameters
type Module interface {
	// Forward records the module applied to input, a node of g, and
	// returns the output node. Shape errors are reported as
	// tensor.ErrShape.
	Forward(g *autodiff.MatrixGraph, input *autodiff.Matrix) (*autodiff.Matrix, error)

	// Parameters returns all trainable parameters of this module.
	Parameters() []*optim.Parameter
}
