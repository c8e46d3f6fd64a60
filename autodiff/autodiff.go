// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// scalars and dense matrices.
//
// Operations applied to nodes are recorded in a graph; RunBackward on an
// output node walks that graph in reverse topological order and adds, to
// every node it reaches, the gradient of the output (taken as the sum of its
// entries) with respect to that node.
//
// Example:
//
//	import (
//	    "github.com/born-ml/microdiff/autodiff"
//	)
//
//	func main() {
//	    g := autodiff.NewScalarGraph()
//	    a := g.Leaf(0.2)
//	    b, _ := a.MulScalar(3)
//	    c, _ := b.AddScalar(1)
//	    d, _ := c.Pow(2)
//
//	    if err := d.RunBackward(); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(a.Grad()) // 2 * 1.6 * 3 = 9.6
//	}
//
// Gradients accumulate across RunBackward calls; use ZeroGrad to reset.
package autodiff

import (
	"github.com/born-ml/microdiff/internal/autodiff"
	"github.com/born-ml/microdiff/internal/autodiff/ops"
	"github.com/born-ml/microdiff/internal/tensor"
)

// Node is a differentiable value of flavor V.
type Node[V any] = autodiff.Node[V]

// Graph is an arena of nodes of flavor V.
type Graph[V any] = autodiff.Graph[V]

// Scalar is a node holding a float64.
type Scalar = autodiff.Scalar

// Matrix is a node holding a *tensor.Matrix.
type Matrix = autodiff.Matrix

// ScalarGraph holds scalar nodes.
type ScalarGraph = autodiff.ScalarGraph

// MatrixGraph holds matrix nodes.
type MatrixGraph = autodiff.MatrixGraph

// Kind identifies a differentiable operation.
type Kind = ops.Kind

// Operation kinds accepted by Graph.Apply.
const (
	Add     = ops.Add
	Mul     = ops.Mul
	MatMul  = ops.MatMul
	Pow     = ops.Pow
	Div     = ops.Div
	Exp     = ops.Exp
	Sigmoid = ops.Sigmoid
	Tanh    = ops.Tanh
	ReLU    = ops.ReLU
)

// Errors returned by operations. Test with errors.Is.
var (
	// ErrType reports an operand of the wrong kind, or an operation that is
	// not defined for the graph's value flavor.
	ErrType = ops.ErrType

	// ErrValue reports a missing or superfluous operand, or a value outside
	// the operation's domain.
	ErrValue = ops.ErrValue

	// ErrShape reports incompatible operand shapes.
	ErrShape = tensor.ErrShape
)

// NewScalarGraph creates an empty graph over float64 values.
func NewScalarGraph() *ScalarGraph {
	return autodiff.NewScalarGraph()
}

// NewMatrixGraph creates an empty graph over dense matrices.
func NewMatrixGraph() *MatrixGraph {
	return autodiff.NewMatrixGraph()
}

// MatrixFromRows adds a matrix leaf built from rows to g.
func MatrixFromRows(g *MatrixGraph, rows [][]float64) (*Matrix, error) {
	return autodiff.MatrixFromRows(g, rows)
}
