package autodiff

import (
	"testing"

	"github.com/born-ml/microdiff/internal/autodiff/ops"
	"github.com/born-ml/microdiff/internal/tensor"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaf(t *testing.T) {
	g := NewScalarGraph()
	a := g.Leaf(2.5)

	assert.Equal(t, 0, a.ID())
	assert.Equal(t, 2.5, a.Value())
	assert.Equal(t, 0.0, a.Grad())
	assert.True(t, a.IsLeaf())
	assert.Empty(t, a.Previous())
	assert.Empty(t, a.Consumers())
	assert.Same(t, g, a.Graph())

	_, ok := a.Op()
	assert.False(t, ok)
	assert.Equal(t, "#0 Leaf = 2.5", a.String())
}

func TestMatrixLeaf(t *testing.T) {
	g := NewMatrixGraph()
	x := must.M1(MatrixFromRows(g, [][]float64{{1, 2}, {3, 4}}))

	assert.Equal(t, tensor.Shape{Rows: 2, Cols: 2}, x.Value().Shape())
	assert.Equal(t, [][]float64{{0, 0}, {0, 0}}, x.Grad().Rows())

	_, err := MatrixFromRows(g, [][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, tensor.ErrShape)
	assert.Equal(t, 1, g.Len())
}

func TestGraph_Node(t *testing.T) {
	g := NewScalarGraph()
	a := g.Leaf(1)
	b := must.M1(a.MulScalar(2))

	assert.Same(t, a, g.Node(0))
	assert.Same(t, b, g.Node(1))
	assert.Nil(t, g.Node(2))
	assert.Nil(t, g.Node(-1))
	assert.Equal(t, []*Scalar{a, b}, g.Nodes())
	assert.Equal(t, "scalar", g.Rules().Name())

	kind, ok := b.Op()
	require.True(t, ok)
	assert.Equal(t, ops.Mul, kind)
	assert.Equal(t, "#1 Mul(#0) = 2", b.String())
}

func TestBackward_Unconsumed(t *testing.T) {
	g := NewScalarGraph()
	a := g.Leaf(3)

	require.NoError(t, a.Backward())
	assert.Equal(t, 1.0, a.Grad())

	require.NoError(t, a.Backward())
	assert.Equal(t, 2.0, a.Grad(), "gradients accumulate across calls")
}

func TestBackward_Step(t *testing.T) {
	g := NewScalarGraph()
	a := g.Leaf(2)
	b := must.M1(a.MulScalar(3))

	// b has no consumers, so it is seeded with one; a then reads it.
	require.NoError(t, b.Backward())
	require.NoError(t, a.Backward())
	assert.Equal(t, 1.0, b.Grad())
	assert.Equal(t, 3.0, a.Grad())

	require.NoError(t, a.Backward())
	assert.Equal(t, 6.0, a.Grad())
}

func TestZeroGrad(t *testing.T) {
	g := NewMatrixGraph()
	x := must.M1(MatrixFromRows(g, [][]float64{{1, 2}}))
	y := must.M1(x.Exp())
	require.NoError(t, y.RunBackward())
	require.NotEqual(t, 0.0, x.Grad().At(0, 0))

	x.ZeroGrad()
	assert.Equal(t, [][]float64{{0, 0}}, x.Grad().Rows())
	assert.Equal(t, [][]float64{{1, 1}}, y.Grad().Rows())

	g.ZeroGrad()
	assert.Equal(t, [][]float64{{0, 0}}, y.Grad().Rows())
}

func TestSetValue(t *testing.T) {
	g := NewMatrixGraph()
	x := must.M1(MatrixFromRows(g, [][]float64{{1, 2}}))
	y := must.M1(x.MulScalar(2))

	require.NoError(t, x.SetValue(must.M1(tensor.FromRows([][]float64{{5, 6}}))))
	assert.Equal(t, [][]float64{{5, 6}}, x.Value().Rows())
	assert.Equal(t, [][]float64{{2, 4}}, y.Value().Rows(), "outputs keep their value")

	err := x.SetValue(must.M1(tensor.Zeros(2, 1)))
	assert.ErrorIs(t, err, tensor.ErrShape)

	err = y.SetValue(must.M1(tensor.Zeros(1, 2)))
	assert.ErrorIs(t, err, ops.ErrValue)
}
