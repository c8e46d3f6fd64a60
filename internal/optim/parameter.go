package optim

import (
	"github.com/born-ml/microdiff/internal/autodiff"
	"github.com/born-ml/microdiff/internal/tensor"
	"github.com/pkg/errors"
)

// Parameter is a trainable matrix that outlives the graphs it is used in.
//
// A graph records operand values when an operation is applied, so training
// builds a fresh graph every iteration. Bind adds the parameter's current
// value to that graph as a leaf; after RunBackward the optimizer reads the
// gradient from the bound leaf.
//
// Example:
//
//	w := optim.NewParameter("w", initial)
//	for range steps {
//	    g := autodiff.NewMatrixGraph()
//	    loss := model(g, w.Bind(g))
//	    _ = loss.RunBackward()
//	    _ = opt.Step()
//	}
type Parameter struct {
	name  string
	value *tensor.Matrix
	node  *autodiff.Matrix // leaf in the most recently bound graph
}

// NewParameter creates a parameter holding value. The parameter owns value
// from here on; updates replace it rather than writing into it.
func NewParameter(name string, value *tensor.Matrix) *Parameter {
	return &Parameter{name: name, value: value}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the current value.
func (p *Parameter) Value() *tensor.Matrix {
	return p.value
}

// SetValue replaces the value. v must have the parameter's shape
// (tensor.ErrShape otherwise). A bound leaf is updated too; operations already
// recorded keep the value they captured.
func (p *Parameter) SetValue(v *tensor.Matrix) error {
	return p.replace(v)
}

// Bind adds the current value to g as a leaf and returns it. Binding again
// to the same graph returns the same leaf, so a parameter used twice in one
// forward pass collects both gradients. Binding to another graph replaces
// the previous leaf.
func (p *Parameter) Bind(g *autodiff.MatrixGraph) *autodiff.Matrix {
	if p.node != nil && p.node.Graph() == g {
		return p.node
	}
	p.node = g.Leaf(p.value)
	return p.node
}

// Grad returns the gradient accumulated on the bound leaf. It is nil if the
// parameter was never bound, or if no backward pass has reached the leaf
// since it was bound; optimizers skip such parameters.
func (p *Parameter) Grad() *tensor.Matrix {
	if p.node == nil || !p.node.Reached() {
		return nil
	}
	return p.node.Grad()
}

// ZeroGrad clears the gradient of the bound leaf.
func (p *Parameter) ZeroGrad() {
	if p.node != nil {
		p.node.ZeroGrad()
	}
}

// setData replaces the value with a matrix built from row-major data.
func (p *Parameter) setData(data []float64) error {
	s := p.value.Shape()
	v, err := tensor.New(s.Rows, s.Cols, data)
	if err != nil {
		return err
	}
	return p.replace(v)
}

// replace swaps in v, which must have the parameter's shape, and mirrors it
// into the bound leaf.
func (p *Parameter) replace(v *tensor.Matrix) error {
	if !v.Shape().Equal(p.value.Shape()) {
		return errors.Wrapf(tensor.ErrShape, "parameter %q: expected %s, got %s", p.name, p.value.Shape(), v.Shape())
	}
	if p.node != nil {
		if err := p.node.SetValue(v); err != nil {
			return err
		}
	}
	p.value = v
	return nil
}
