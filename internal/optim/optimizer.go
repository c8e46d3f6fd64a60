// Package optim implements gradient-descent optimizers over matrix
// parameters.
//
// This package provides:
//   - Parameter: a trainable matrix bound into a fresh graph each iteration
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Example usage:
//
//	opt := optim.NewSGD([]*optim.Parameter{w, b}, optim.SGDConfig{LR: 0.05})
//
//	for epoch := range epochs {
//	    g := autodiff.NewMatrixGraph()
//	    loss := computeLoss(g, w.Bind(g), b.Bind(g))
//	    if err := loss.RunBackward(); err != nil {
//	        return err
//	    }
//	    if err := opt.Step(); err != nil {
//	        return err
//	    }
//	}
package optim

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients of the bound leaves
//   - GetLR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step updates every bound parameter from its leaf's gradient.
	// Parameters that were never bound are skipped.
	Step() error

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

func zeroGrad(params []*Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
