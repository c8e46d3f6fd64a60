package autodiff

import (
	"github.com/born-ml/microdiff/internal/autodiff/ops"
	"github.com/pkg/errors"
)

// Apply records kind applied to lhs and rhs, returning the output node.
//
// lhs must be a node of g. rhs may be nil (absent), a Go number (float64,
// float32, int, int32, int64) or a node of g; which of those are legal
// depends on the operation.
//
// Errors:
//   - ops.ErrType: lhs is not a node of g, rhs has an unsupported type or
//     the wrong kind for the operation, or the operation is not defined for
//     this graph's value flavor
//   - ops.ErrValue: a required rhs is missing, or a unary operation got one
//   - tensor.ErrShape: the operand shapes are incompatible
//
// All checks and the forward computation happen before anything is added
// to the graph, so a failed Apply leaves the graph untouched.
func (g *Graph[V]) Apply(kind ops.Kind, lhs, rhs any) (*Node[V], error) {
	lhsNode, ok := lhs.(*Node[V])
	if !ok || lhsNode == nil {
		return nil, errors.Wrapf(ops.ErrType, "%s: left-hand side must be a %s node, got %T", kind, g.rules.Name(), lhs)
	}
	if lhsNode.graph != g {
		return nil, errors.Wrapf(ops.ErrType, "%s: left-hand node #%d belongs to another graph", kind, lhsNode.id)
	}
	rule, err := g.rules.Lookup(kind)
	if err != nil {
		return nil, err
	}
	operand, rhsNode, err := g.operand(kind, rhs)
	if err != nil {
		return nil, err
	}
	if err := rule.Check(operand.Kind()); err != nil {
		return nil, err
	}

	result, err := rule.Forward(lhsNode.value, operand)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s forward", kind)
	}

	// Nothing below can fail.
	output := g.newNode(result, &kind)
	lhsValue := lhsNode.value
	output.previous = append(output.previous, lhsNode.id)
	lhsNode.contributions = append(lhsNode.contributions, contribution[V]{
		consumer: output.id,
		local: func(upstream V) (V, error) {
			return rule.BackwardLHS(lhsValue, operand, upstream)
		},
	})
	if rhsNode != nil {
		if rhsNode != lhsNode {
			output.previous = append(output.previous, rhsNode.id)
		}
		rhsNode.contributions = append(rhsNode.contributions, contribution[V]{
			consumer: output.id,
			local: func(upstream V) (V, error) {
				return rule.BackwardRHS(lhsValue, operand, upstream)
			},
		})
	}
	return output, nil
}

// operand classifies rhs. The returned node is non-nil only for node operands.
func (g *Graph[V]) operand(kind ops.Kind, rhs any) (ops.Operand[V], *Node[V], error) {
	switch r := rhs.(type) {
	case nil:
		return ops.NoOperand[V](), nil, nil
	case *Node[V]:
		if r == nil {
			return ops.NoOperand[V](), nil, nil
		}
		if r.graph != g {
			return ops.Operand[V]{}, nil, errors.Wrapf(ops.ErrType, "%s: right-hand node #%d belongs to another graph", kind, r.id)
		}
		return ops.ValueOperand(r.value), r, nil
	case float64:
		return ops.NumberOperand[V](r), nil, nil
	case float32:
		return ops.NumberOperand[V](float64(r)), nil, nil
	case int:
		return ops.NumberOperand[V](float64(r)), nil, nil
	case int32:
		return ops.NumberOperand[V](float64(r)), nil, nil
	case int64:
		return ops.NumberOperand[V](float64(r)), nil, nil
	default:
		return ops.Operand[V]{}, nil, errors.Wrapf(ops.ErrType, "%s: unsupported right-hand side %T", kind, rhs)
	}
}

// Add returns n + other.
func (n *Node[V]) Add(other *Node[V]) (*Node[V], error) {
	return n.graph.Apply(ops.Add, n, other)
}

// AddScalar returns n + c, with c broadcast to the shape of n.
func (n *Node[V]) AddScalar(c float64) (*Node[V], error) {
	return n.graph.Apply(ops.Add, n, c)
}

// Sub returns n - other, recorded as n + (other * -1).
func (n *Node[V]) Sub(other *Node[V]) (*Node[V], error) {
	// Report foreign, missing or mismatched operands before creating the
	// intermediate negation node.
	if other == nil || other.graph != n.graph || !n.graph.algebra.SameShape(n.value, other.value) {
		return n.graph.Apply(ops.Add, n, other)
	}
	neg, err := other.Neg()
	if err != nil {
		return nil, err
	}
	return n.Add(neg)
}

// SubScalar returns n - c.
func (n *Node[V]) SubScalar(c float64) (*Node[V], error) {
	return n.AddScalar(-c)
}

// RSubScalar returns c - n, recorded as (n * -1) + c.
func (n *Node[V]) RSubScalar(c float64) (*Node[V], error) {
	neg, err := n.Neg()
	if err != nil {
		return nil, err
	}
	return neg.AddScalar(c)
}

// Mul returns the element-wise product n * other.
func (n *Node[V]) Mul(other *Node[V]) (*Node[V], error) {
	return n.graph.Apply(ops.Mul, n, other)
}

// MulScalar returns n * c.
func (n *Node[V]) MulScalar(c float64) (*Node[V], error) {
	return n.graph.Apply(ops.Mul, n, c)
}

// Neg returns -n, recorded as n * -1.
func (n *Node[V]) Neg() (*Node[V], error) {
	return n.MulScalar(-1)
}

// MatMul returns the matrix product n @ other.
func (n *Node[V]) MatMul(other *Node[V]) (*Node[V], error) {
	return n.graph.Apply(ops.MatMul, n, other)
}

// Pow returns n raised element-wise to the constant p.
func (n *Node[V]) Pow(p float64) (*Node[V], error) {
	return n.graph.Apply(ops.Pow, n, p)
}

// Div returns n divided element-wise by the non-zero constant c.
func (n *Node[V]) Div(c float64) (*Node[V], error) {
	return n.graph.Apply(ops.Div, n, c)
}

// RDivScalar returns c / n element-wise, recorded as n^-1 * c.
func (n *Node[V]) RDivScalar(c float64) (*Node[V], error) {
	inv, err := n.Pow(-1)
	if err != nil {
		return nil, err
	}
	return inv.MulScalar(c)
}

// Exp returns exp(n).
func (n *Node[V]) Exp() (*Node[V], error) {
	return n.graph.Apply(ops.Exp, n, nil)
}

// Sigmoid returns 1 / (1 + exp(-n)).
func (n *Node[V]) Sigmoid() (*Node[V], error) {
	return n.graph.Apply(ops.Sigmoid, n, nil)
}

// Tanh returns tanh(n).
func (n *Node[V]) Tanh() (*Node[V], error) {
	return n.graph.Apply(ops.Tanh, n, nil)
}

// ReLU returns max(0, n).
func (n *Node[V]) ReLU() (*Node[V], error) {
	return n.graph.Apply(ops.ReLU, n, nil)
}
