// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-descent optimizers for matrix parameters.
//
// # Overview
//
// This package contains:
//   - Parameter: a trainable matrix, bound into a fresh graph each iteration
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Training Loop Pattern
//
//	w := optim.NewParameter("w", initial)
//	opt := optim.NewSGD([]*optim.Parameter{w}, optim.SGDConfig{LR: 0.05, Momentum: 0.9})
//
//	for epoch := range numEpochs {
//	    // 1. Forward pass on a fresh graph
//	    g := autodiff.NewMatrixGraph()
//	    loss, err := model(g, w.Bind(g))
//	    if err != nil {
//	        return err
//	    }
//
//	    // 2. Backward pass
//	    if err := loss.RunBackward(); err != nil {
//	        return err
//	    }
//
//	    // 3. Update parameters
//	    if err := opt.Step(); err != nil {
//	        return err
//	    }
//	}
//
// A fresh graph starts with zero gradients, so ZeroGrad is only needed when
// several backward passes share one graph.
package optim
