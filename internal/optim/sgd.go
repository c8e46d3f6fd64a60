package optim

import (
	"fmt"

	"github.com/born-ml/microdiff/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(params, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*Parameter
	lr         float64
	momentum   float64
	velocities map[*Parameter][]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*Parameter][]float64),
	}
}

// Step performs a single optimization step.
//
// Applies gradient descent update to all bound parameters:
//   - Without momentum: param -= lr * grad
//   - With momentum: velocity = momentum * velocity + grad, param -= lr * velocity
func (s *SGD) Step() error {
	klog.V(2).Infof("sgd: step lr=%g momentum=%g params=%d", s.lr, s.momentum, len(s.params))

	for _, p := range s.params {
		grad := p.Grad()
		if grad == nil {
			continue
		}

		update := grad.Data()
		if s.momentum != 0 {
			velocity, exists := s.velocities[p]
			if !exists {
				velocity = make([]float64, len(update))
				s.velocities[p] = velocity
			}
			floats.Scale(s.momentum, velocity)
			floats.Add(velocity, update)
			update = velocity
		}

		value := p.value.Data()
		floats.AddScaled(value, -s.lr, update)
		if err := p.setData(value); err != nil {
			return errors.WithMessagef(err, "sgd: updating %q", p.name)
		}
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// StateDict returns the velocity buffers keyed "velocity.{param_index}".
// Without momentum, or before the first step, it is empty.
func (s *SGD) StateDict() map[string]*tensor.Matrix {
	state := make(map[string]*tensor.Matrix)
	if s.momentum == 0 {
		return state
	}

	for i, p := range s.params {
		velocity, exists := s.velocities[p]
		if !exists {
			continue
		}
		shape := p.value.Shape()
		m, err := tensor.New(shape.Rows, shape.Cols, velocity)
		if err != nil {
			panic(err) // velocity always has the parameter's size
		}
		state[fmt.Sprintf("velocity.%d", i)] = m
	}
	return state
}

// LoadStateDict restores velocity buffers saved by StateDict. Missing
// entries start from zero on the next step. Returns tensor.ErrShape if a
// velocity does not match its parameter.
func (s *SGD) LoadStateDict(state map[string]*tensor.Matrix) error {
	if s.momentum == 0 {
		return nil
	}

	velocities := make(map[*Parameter][]float64)
	for i, p := range s.params {
		m, exists := state[fmt.Sprintf("velocity.%d", i)]
		if !exists {
			continue
		}
		if !m.Shape().Equal(p.value.Shape()) {
			return errors.Wrapf(tensor.ErrShape, "velocity for parameter %d (%q): expected %s, got %s",
				i, p.name, p.value.Shape(), m.Shape())
		}
		velocities[p] = m.Data()
	}
	s.velocities = velocities
	return nil
}
