package tensor

import (
	"math"
	"testing"

	"github.com/born-ml/microdiff/internal/parallel"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatrices() (*Matrix, *Matrix) {
	x := must.M1(FromRows([][]float64{{1, 2}, {3, 4}}))
	y := must.M1(FromRows([][]float64{{5, 6}, {7, 8}}))
	return x, y
}

func TestElementwise(t *testing.T) {
	x, y := testMatrices()

	sum := must.M1(x.Add(y))
	assert.Equal(t, [][]float64{{6, 8}, {10, 12}}, sum.Rows())

	diff := must.M1(y.Sub(x))
	assert.Equal(t, [][]float64{{4, 4}, {4, 4}}, diff.Rows())

	prod := must.M1(x.MulElem(y))
	assert.Equal(t, [][]float64{{5, 12}, {21, 32}}, prod.Rows())

	quot := must.M1(y.DivElem(x))
	assert.Equal(t, [][]float64{{5, 3}, {7.0 / 3, 2}}, quot.Rows())

	// Operands are untouched.
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, x.Rows())
}

func TestElementwise_ShapeMismatch(t *testing.T) {
	x, _ := testMatrices()
	row := must.M1(FromRows([][]float64{{1, 2}}))

	_, err := x.Add(row)
	assert.ErrorIs(t, err, ErrShape)
	_, err = x.Sub(row)
	assert.ErrorIs(t, err, ErrShape)
	_, err = x.MulElem(row)
	assert.ErrorIs(t, err, ErrShape)
	_, err = x.DivElem(row)
	assert.ErrorIs(t, err, ErrShape)
}

func TestMatMul(t *testing.T) {
	x, y := testMatrices()
	p := must.M1(x.MatMul(y))
	assert.Equal(t, [][]float64{{19, 22}, {43, 50}}, p.Rows())

	a := must.M1(FromRows([][]float64{{1, 2, 3}}))
	b := must.M1(FromRows([][]float64{{1}, {0}, {2}}))
	ab := must.M1(a.MatMul(b))
	assert.Equal(t, Shape{Rows: 1, Cols: 1}, ab.Shape())
	assert.Equal(t, 7.0, ab.At(0, 0))
}

func TestMatMul_ShapeMismatch(t *testing.T) {
	a := must.M1(Ones(2, 3))
	b := must.M1(Ones(2, 2))
	_, err := a.MatMul(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShape)
}

func TestMatMul_Identity(t *testing.T) {
	x, _ := testMatrices()
	id := must.M1(Identity(2))
	assert.True(t, must.M1(x.MatMul(id)).EqualApprox(x, 0))
}

func TestScalarOps(t *testing.T) {
	x, _ := testMatrices()

	assert.Equal(t, [][]float64{{3, 4}, {5, 6}}, x.AddScalar(2).Rows())
	assert.Equal(t, [][]float64{{-1, -2}, {-3, -4}}, x.Scale(-1).Rows())
	assert.Equal(t, [][]float64{{1, 4}, {9, 16}}, x.PowScalar(2).Rows())
	assert.InDelta(t, 0.5, x.PowScalar(-1).At(1, 0)*1.5, 1e-12)
}

func TestTransposeExpSum(t *testing.T) {
	a := must.M1(FromRows([][]float64{{1, 2, 3}, {4, 5, 6}}))

	at := a.T()
	assert.Equal(t, Shape{Rows: 3, Cols: 2}, at.Shape())
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at.Rows())

	e := a.Exp()
	assert.InDelta(t, math.Exp(5), e.At(1, 1), 1e-12)

	assert.Equal(t, 21.0, a.Sum())
}

func TestApply(t *testing.T) {
	x, _ := testMatrices()
	sq := x.Apply(func(v float64) float64 { return v * v })
	assert.Equal(t, [][]float64{{1, 4}, {9, 16}}, sq.Rows())
}

func TestApply_Tall(t *testing.T) {
	old := applyConfig
	applyConfig = parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16}
	defer func() { applyConfig = old }()

	const rows = 200
	data := make([]float64, rows*3)
	for i := range data {
		data[i] = float64(i)
	}
	x := must.M1(New(rows, 3, data))

	y := x.Apply(func(v float64) float64 { return 2*v + 1 })
	for i, v := range y.Data() {
		require.Equal(t, 2*float64(i)+1, v, "entry %d", i)
	}
}
