package autodiff

import (
	"github.com/born-ml/microdiff/internal/autodiff/ops"
)

// Graph is an arena of differentiable nodes.
//
// Nodes are appended in creation order and addressed by their index, so a
// node id never changes and edges are plain id lists. Because every
// operation output is created after its operands, creation order is itself
// a topological order.
//
// A Graph is not safe for concurrent use.
type Graph[V any] struct {
	rules   *ops.Table[V]
	algebra Algebra[V]
	nodes   []*Node[V]
}

// NewGraph creates an empty graph using the given rule table and algebra.
func NewGraph[V any](rules *ops.Table[V], algebra Algebra[V]) *Graph[V] {
	return &Graph[V]{
		rules:   rules,
		algebra: algebra,
		nodes:   make([]*Node[V], 0, 64),
	}
}

// Leaf adds an input node holding v. Its gradient starts at zero.
func (g *Graph[V]) Leaf(v V) *Node[V] {
	return g.newNode(v, nil)
}

// newNode appends a node. op is nil for leaves.
func (g *Graph[V]) newNode(v V, op *ops.Kind) *Node[V] {
	n := &Node[V]{
		graph: g,
		id:    len(g.nodes),
		value: v,
		grad:  g.algebra.ZerosLike(v),
	}
	if op != nil {
		n.op, n.hasOp = *op, true
	}
	g.nodes = append(g.nodes, n)
	return n
}

// Len returns the number of nodes in the graph.
func (g *Graph[V]) Len() int {
	return len(g.nodes)
}

// Node returns the node with the given id, or nil if there is none.
func (g *Graph[V]) Node(id int) *Node[V] {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Nodes returns all nodes in creation order.
func (g *Graph[V]) Nodes() []*Node[V] {
	nodes := make([]*Node[V], len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Rules returns the operation table the graph dispatches through.
func (g *Graph[V]) Rules() *ops.Table[V] {
	return g.rules
}

// ZeroGrad resets the gradient of every node to zero.
func (g *Graph[V]) ZeroGrad() {
	for _, n := range g.nodes {
		n.ZeroGrad()
	}
}
