package autodiff

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// TopologicalOrder returns every node reachable from start through
// Previous edges, antecedents before the nodes derived from them. start is
// always last. Each node appears once, however many paths reach it.
func (g *Graph[V]) TopologicalOrder(start *Node[V]) []*Node[V] {
	type frame struct {
		id       int
		expanded bool
	}
	visited := make(map[int]struct{}, len(g.nodes))
	order := make([]*Node[V], 0, len(g.nodes))
	stack := []frame{{id: start.id}}

	// Iterative post-order DFS: a node is emitted when its frame is popped
	// the second time, after all its antecedents.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.expanded {
			order = append(order, g.nodes[top.id])
			continue
		}
		if _, ok := visited[top.id]; ok {
			continue
		}
		visited[top.id] = struct{}{}

		stack = append(stack, frame{id: top.id, expanded: true})
		prev := g.nodes[top.id].previous
		for i := len(prev) - 1; i >= 0; i-- {
			if _, ok := visited[prev[i]]; !ok {
				stack = append(stack, frame{id: prev[i]})
			}
		}
	}
	return order
}

// RunBackward computes, for every node reachable from start, the gradient of
// start (seeded with all ones, i.e. treated as the sum of its entries) with
// respect to that node, and adds it to the node's gradient.
//
// Algorithm:
//  1. Topologically order the nodes reachable from start
//  2. Seed start with the all-ones value
//  3. Walk the order in reverse; each node sums the contributions of its
//     consumers that are part of this traversal
//  4. Add the gradients of this traversal to the accumulated ones
//
// Contributions read the gradients of this traversal only, so calling
// RunBackward twice adds exactly two copies of every gradient. Gradients are
// reset only by ZeroGrad.
func (g *Graph[V]) RunBackward(start *Node[V]) error {
	if start == nil || start.graph != g {
		return errors.New("backward: start node does not belong to this graph")
	}

	order := g.TopologicalOrder(start)
	klog.V(2).Infof("backward: %d of %d nodes reachable from #%d", len(order), len(g.nodes), start.id)

	// Every consumer of a reached node that is itself reached comes later in
	// order, so its entry is final when the node reads it.
	grads := make(map[int]V, len(order))
	grads[start.id] = g.algebra.OnesLike(start.value)
	lookup := func(id int) (V, bool) {
		v, ok := grads[id]
		return v, ok
	}
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n == start {
			continue
		}
		delta, err := n.collect(lookup)
		if err != nil {
			return errors.WithMessage(err, "backward")
		}
		grads[n.id] = delta
	}

	for _, n := range order {
		if err := n.accumulate(grads[n.id]); err != nil {
			return errors.WithMessage(err, "backward")
		}
		if klog.V(3).Enabled() {
			klog.Infof("backward: %s grad=%v", n, n.grad)
		}
	}
	return nil
}

// RunBackward runs the backward engine from n. See Graph.RunBackward.
func (n *Node[V]) RunBackward() error {
	return n.graph.RunBackward(n)
}
