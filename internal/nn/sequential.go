package nn

import (
	"github.com/born-ml/microdiff/internal/autodiff"
	"github.com/born-ml/microdiff/internal/optim"
	"github.com/pkg/errors"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input.
//
// Example:
//
//	model := nn.NewSequential(hidden, nn.NewTanh(), output)
//	out, err := model.Forward(g, x)
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(g *autodiff.MatrixGraph, input *autodiff.Matrix) (*autodiff.Matrix, error) {
	output := input
	for i, module := range s.modules {
		var err error
		if output, err = module.Forward(g, output); err != nil {
			return nil, errors.WithMessagef(err, "sequential: module %d", i)
		}
	}
	return output, nil
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential) Parameters() []*optim.Parameter {
	var params []*optim.Parameter
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence.
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at index, or nil if out of range.
func (s *Sequential) Module(index int) Module {
	if index < 0 || index >= len(s.modules) {
		return nil
	}
	return s.modules[index]
}
