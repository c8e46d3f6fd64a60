// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks over matrix graphs.
//
// # Overview
//
// Modules own optim.Parameters and bind them into the graph passed to
// Forward:
//   - Linear: y = x @ W + b
//   - ReLU, Sigmoid, Tanh: element-wise activations
//   - Sequential: chains modules
//   - MSELoss: mean squared error
//
// # Basic Usage
//
//	rng := rand.New(rand.NewSource(1))
//	hidden, _ := nn.NewLinear("hidden", 1, 8, rng)
//	output, _ := nn.NewLinear("output", 8, 1, rng)
//	model := nn.NewSequential(hidden, nn.NewTanh(), output)
//	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.01})
//
//	for epoch := range epochs {
//	    g := autodiff.NewMatrixGraph()
//	    x, _ := autodiff.MatrixFromRows(g, inputs)
//	    y, _ := autodiff.MatrixFromRows(g, targets)
//	    pred, _ := model.Forward(g, x)
//	    loss, _ := nn.MSELoss(pred, y)
//	    _ = loss.RunBackward()
//	    _ = opt.Step()
//	}
package nn
