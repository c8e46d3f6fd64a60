package autodiff

import (
	"fmt"

	"github.com/born-ml/microdiff/internal/autodiff/ops"
	"github.com/born-ml/microdiff/internal/tensor"
	"github.com/pkg/errors"
)

// Node is a differentiable value in a Graph.
//
// Edges point from an operation's output to its operands (Previous).
// Gradients flow the other way: every operation that consumes a node
// registers a contribution on it, which reads the consumer's gradient at
// the time it is evaluated.
type Node[V any] struct {
	graph *Graph[V]
	id    int
	op    ops.Kind // valid only if hasOp
	hasOp bool

	value         V
	grad          V
	reached       bool // set once a backward pass accumulated into grad
	previous      []int
	contributions []contribution[V]
}

// contribution is one consumer's share of a node's gradient.
type contribution[V any] struct {
	consumer int                         // id of the output node whose gradient is read
	local    func(upstream V) (V, error) // local gradient times upstream
}

// ID returns the node's stable index in its graph.
func (n *Node[V]) ID() int {
	return n.id
}

// Graph returns the graph owning the node.
func (n *Node[V]) Graph() *Graph[V] {
	return n.graph
}

// Value returns the forward value.
func (n *Node[V]) Value() V {
	return n.value
}

// Grad returns the accumulated gradient.
func (n *Node[V]) Grad() V {
	return n.grad
}

// Reached reports whether any backward pass (RunBackward or Backward) has
// accumulated a gradient into the node. A node that was never reached keeps
// its all-zero gradient, which the optimizers distinguish from a gradient
// that happens to be zero. ZeroGrad does not clear it.
func (n *Node[V]) Reached() bool {
	return n.reached
}

// Op returns the operation that produced the node; ok is false for leaves.
func (n *Node[V]) Op() (kind ops.Kind, ok bool) {
	return n.op, n.hasOp
}

// IsLeaf reports whether the node was created by Graph.Leaf.
func (n *Node[V]) IsLeaf() bool {
	return !n.hasOp
}

// Previous returns the antecedents the node was derived from; empty for leaves.
func (n *Node[V]) Previous() []*Node[V] {
	prev := make([]*Node[V], len(n.previous))
	for i, id := range n.previous {
		prev[i] = n.graph.nodes[id]
	}
	return prev
}

// Consumers returns the ids of the nodes that consumed this node, one per
// registered contribution (an operation using the node twice appears twice).
func (n *Node[V]) Consumers() []int {
	ids := make([]int, len(n.contributions))
	for i, c := range n.contributions {
		ids[i] = c.consumer
	}
	return ids
}

// ZeroGrad resets the gradient to the all-zero value of the node's shape.
func (n *Node[V]) ZeroGrad() {
	n.grad = n.graph.algebra.ZerosLike(n.value)
}

// SetValue replaces the value of a leaf. The new value must have the same
// shape. Operations already applied keep the operand values they captured.
func (n *Node[V]) SetValue(v V) error {
	if n.hasOp {
		return errors.Wrapf(ops.ErrValue, "node #%d is the output of %s; only leaves can be updated", n.id, n.op)
	}
	if !n.graph.algebra.SameShape(n.value, v) {
		return errors.Wrapf(tensor.ErrShape, "node #%d: new value has a different shape", n.id)
	}
	n.value = v
	return nil
}

// Backward performs one gradient-contribution step: it adds to the node's
// gradient the sum of every registered contribution, evaluated against the
// consumers' current gradients. A node nobody consumed contributes the
// all-ones value, as if it were itself the loss.
//
// Calling Backward twice without ZeroGrad accumulates twice.
func (n *Node[V]) Backward() error {
	if len(n.contributions) == 0 {
		return n.accumulate(n.graph.algebra.OnesLike(n.value))
	}
	delta, err := n.collect(func(id int) (V, bool) {
		return n.graph.nodes[id].grad, true
	})
	if err != nil {
		return err
	}
	return n.accumulate(delta)
}

// collect sums the contributions of the consumers for which upstream returns
// a gradient, evaluating each against that gradient.
func (n *Node[V]) collect(upstream func(consumer int) (V, bool)) (V, error) {
	alg := n.graph.algebra
	sum := alg.ZerosLike(n.value)
	for _, c := range n.contributions {
		grad, ok := upstream(c.consumer)
		if !ok {
			continue
		}
		local, err := c.local(grad)
		if err != nil {
			return sum, errors.WithMessagef(err, "gradient of node #%d through %s", n.id, n.graph.nodes[c.consumer].opName())
		}
		if sum, err = alg.Add(sum, local); err != nil {
			return sum, errors.WithMessagef(err, "accumulating gradient of node #%d", n.id)
		}
	}
	return sum, nil
}

func (n *Node[V]) accumulate(delta V) error {
	grad, err := n.graph.algebra.Add(n.grad, delta)
	if err != nil {
		return errors.WithMessagef(err, "accumulating gradient of node #%d", n.id)
	}
	n.grad = grad
	n.reached = true
	return nil
}

func (n *Node[V]) opName() string {
	if !n.hasOp {
		return "Leaf"
	}
	return n.op.String()
}

// String describes the node, e.g. "#3 Mul(#1, #2) = 6".
func (n *Node[V]) String() string {
	if !n.hasOp {
		return fmt.Sprintf("#%d Leaf = %v", n.id, n.value)
	}
	args := ""
	for i, id := range n.previous {
		if i > 0 {
			args += ", "
		}
		args += fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("#%d %s(%s) = %v", n.id, n.op, args, n.value)
}
