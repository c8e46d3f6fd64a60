// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/microdiff/internal/autodiff"
	"github.com/born-ml/microdiff/internal/nn"
	"github.com/born-ml/microdiff/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization. Its
// parameters are named "<name>.weight" and "<name>.bias".
func NewLinear(name string, inFeatures, outFeatures int, rng *rand.Rand) (*Linear, error) {
	return nn.NewLinear(name, inFeatures, outFeatures, rng)
}

// Activations

// ReLU applies max(0, x).
type ReLU = nn.ReLU

// NewReLU creates a ReLU activation.
func NewReLU() *ReLU { return nn.NewReLU() }

// Sigmoid applies 1 / (1 + exp(-x)).
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid() *Sigmoid { return nn.NewSigmoid() }

// Tanh applies tanh(x).
type Tanh = nn.Tanh

// NewTanh creates a Tanh activation.
func NewTanh() *Tanh { return nn.NewTanh() }

// Containers

// Sequential chains modules.
type Sequential = nn.Sequential

// NewSequential creates a Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Loss and initialization

// MSELoss records mean((predictions - targets)²); the returned node's
// entries sum to the loss.
func MSELoss(predictions, targets *autodiff.Matrix) (*autodiff.Matrix, error) {
	return nn.MSELoss(predictions, targets)
}

// Xavier returns a rows × cols matrix with Glorot uniform entries.
func Xavier(rows, cols int, rng *rand.Rand) (*tensor.Matrix, error) {
	return nn.Xavier(rows, cols, rng)
}
