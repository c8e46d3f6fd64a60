// Package autodiff implements reverse-mode automatic differentiation over
// scalars and dense matrices.
//
// Architecture:
//   - Graph[V]: an arena of nodes addressed by stable integer ids
//   - Node[V]: a value, its accumulated gradient, its antecedents, and the
//     gradient contributions registered by every operation that consumed it
//   - ops.Table[V]: the pure forward/backward rules, keyed by ops.Kind
//   - RunBackward: topological sort from an output node, then accumulation
//     in reverse order
//
// The engine is written once and is generic over the value flavor: float64
// for the scalar graph, *tensor.Matrix for the matrix graph.
//
// Usage:
//
//	g := autodiff.NewScalarGraph()
//	a := g.Leaf(0.2)
//	b, _ := a.MulScalar(3)
//	c, _ := b.AddScalar(1)
//	_ = c.RunBackward()
//	fmt.Println(a.Grad()) // dc/da = 3
package autodiff

import (
	"github.com/born-ml/microdiff/internal/autodiff/ops"
	"github.com/born-ml/microdiff/internal/tensor"
)

// Algebra is the minimal arithmetic the engine needs to accumulate
// gradients of values of type V.
type Algebra[V any] interface {
	// ZerosLike returns the all-zero value with the shape of v.
	ZerosLike(v V) V
	// OnesLike returns the all-ones value with the shape of v.
	OnesLike(v V) V
	// Add returns a + b.
	Add(a, b V) (V, error)
	// SameShape reports whether a and b have the same shape.
	SameShape(a, b V) bool
}

// Scalar is a node of a scalar graph.
type Scalar = Node[float64]

// Matrix is a node of a matrix graph.
type Matrix = Node[*tensor.Matrix]

// ScalarGraph holds scalar nodes.
type ScalarGraph = Graph[float64]

// MatrixGraph holds matrix nodes.
type MatrixGraph = Graph[*tensor.Matrix]

// NewScalarGraph creates an empty graph over float64 values.
func NewScalarGraph() *ScalarGraph {
	return NewGraph[float64](ops.ScalarRules(), scalarAlgebra{})
}

// NewMatrixGraph creates an empty graph over dense matrices.
func NewMatrixGraph() *MatrixGraph {
	return NewGraph[*tensor.Matrix](ops.MatrixRules(), matrixAlgebra{})
}

// MatrixFromRows adds a matrix leaf built from rows to g.
// Returns tensor.ErrShape for ragged or empty input.
func MatrixFromRows(g *MatrixGraph, rows [][]float64) (*Matrix, error) {
	m, err := tensor.FromRows(rows)
	if err != nil {
		return nil, err
	}
	return g.Leaf(m), nil
}

type scalarAlgebra struct{}

func (scalarAlgebra) ZerosLike(float64) float64 {
	return 0
}

func (scalarAlgebra) OnesLike(float64) float64 {
	return 1
}

func (scalarAlgebra) Add(a, b float64) (float64, error) {
	return a + b, nil
}

func (scalarAlgebra) SameShape(float64, float64) bool {
	return true
}

type matrixAlgebra struct{}

func (matrixAlgebra) ZerosLike(m *tensor.Matrix) *tensor.Matrix {
	return m.ZerosLike()
}

func (matrixAlgebra) OnesLike(m *tensor.Matrix) *tensor.Matrix {
	return m.OnesLike()
}

func (matrixAlgebra) Add(a, b *tensor.Matrix) (*tensor.Matrix, error) {
	return a.Add(b)
}

func (matrixAlgebra) SameShape(a, b *tensor.Matrix) bool {
	return a.Shape().Equal(b.Shape())
}
