package optim_test

import (
	"testing"

	"github.com/born-ml/microdiff/internal/autodiff"
	"github.com/born-ml/microdiff/internal/optim"
	"github.com/born-ml/microdiff/internal/tensor"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitStep binds params into a fresh graph, seeds each leaf's gradient with
// ones and applies one optimizer step.
func unitStep(t *testing.T, opt optim.Optimizer, params ...*optim.Parameter) {
	t.Helper()
	g := autodiff.NewMatrixGraph()
	for _, p := range params {
		require.NoError(t, p.Bind(g).RunBackward())
	}
	require.NoError(t, opt.Step())
}

func scalarParam(name string, v float64) *optim.Parameter {
	return optim.NewParameter(name, must.M1(tensor.Full(1, 1, v)))
}

func TestParameter(t *testing.T) {
	p := scalarParam("x", 2)
	assert.Equal(t, "x", p.Name())
	assert.Nil(t, p.Grad())
	p.ZeroGrad()

	g := autodiff.NewMatrixGraph()
	leaf := p.Bind(g)
	assert.True(t, leaf.IsLeaf())
	assert.Same(t, p.Value(), leaf.Value())

	require.NoError(t, leaf.RunBackward())
	assert.Equal(t, 1.0, p.Grad().At(0, 0))

	p.ZeroGrad()
	assert.Equal(t, 0.0, p.Grad().At(0, 0))
}

func TestParameter_BindOncePerGraph(t *testing.T) {
	p := scalarParam("x", 3)
	g := autodiff.NewMatrixGraph()
	a, b := p.Bind(g), p.Bind(g)
	require.Same(t, a, b)
	assert.Equal(t, 1, g.Len())

	// x * x through two Bind calls: grad = 2x.
	sq := must.M1(a.Mul(b))
	require.NoError(t, sq.RunBackward())
	assert.Equal(t, 6.0, p.Grad().At(0, 0))

	other := autodiff.NewMatrixGraph()
	assert.NotSame(t, a, p.Bind(other))
	assert.Equal(t, 0.0, p.Grad().At(0, 0), "a new graph starts from zero")
}

func TestSGD_SimpleUpdate(t *testing.T) {
	p := scalarParam("x", 2)
	opt := optim.NewSGD([]*optim.Parameter{p}, optim.SGDConfig{LR: 0.1})

	unitStep(t, opt, p)

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	assert.InDelta(t, 1.9, p.Value().At(0, 0), 1e-12)
}

func TestSGD_WithMomentum(t *testing.T) {
	p := scalarParam("x", 1)
	opt := optim.NewSGD([]*optim.Parameter{p}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// v_1 = 0.9 * 0 + 1.0 = 1.0, x_1 = 1.0 - 0.1 * 1.0 = 0.9
	unitStep(t, opt, p)
	assert.InDelta(t, 0.9, p.Value().At(0, 0), 1e-12)

	// v_2 = 0.9 * 1.0 + 1.0 = 1.9, x_2 = 0.9 - 0.1 * 1.9 = 0.71
	unitStep(t, opt, p)
	assert.InDelta(t, 0.71, p.Value().At(0, 0), 1e-12)
}

func TestSGD_SkipsUnboundParameters(t *testing.T) {
	bound := scalarParam("bound", 1)
	unbound := scalarParam("unbound", 5)
	opt := optim.NewSGD([]*optim.Parameter{bound, unbound}, optim.SGDConfig{})

	unitStep(t, opt, bound)
	assert.InDelta(t, 0.99, bound.Value().At(0, 0), 1e-12, "default LR is 0.01")
	assert.Equal(t, 5.0, unbound.Value().At(0, 0))
}

func TestStep_SkipsBoundButUnreachedParameters(t *testing.T) {
	for _, tc := range []struct {
		name string
		opt  func(params []*optim.Parameter) optim.Optimizer
	}{
		{"sgd", func(params []*optim.Parameter) optim.Optimizer {
			return optim.NewSGD(params, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
		}},
		{"adam", func(params []*optim.Parameter) optim.Optimizer {
			return optim.NewAdam(params, optim.AdamConfig{LR: 0.1})
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := scalarParam("w", 1)
			u := scalarParam("u", 1)
			opt := tc.opt([]*optim.Parameter{w, u})

			// Both take part in the first step.
			unitStep(t, opt, w, u)
			moved := u.Value().At(0, 0)
			require.Less(t, moved, 1.0)

			// u is bound to the next graph but is not part of the loss.
			g := autodiff.NewMatrixGraph()
			loss := w.Bind(g)
			u.Bind(g)
			require.NoError(t, loss.RunBackward())
			assert.Nil(t, u.Grad())
			require.NoError(t, opt.Step())

			assert.Equal(t, moved, u.Value().At(0, 0), "momentum must not move an unreached parameter")
		})
	}
}

func TestSGD_UpdateMirrorsIntoBoundLeaf(t *testing.T) {
	p := scalarParam("x", 2)
	opt := optim.NewSGD([]*optim.Parameter{p}, optim.SGDConfig{LR: 0.5})

	g := autodiff.NewMatrixGraph()
	leaf := p.Bind(g)
	before := p.Value()
	require.NoError(t, leaf.RunBackward())
	require.NoError(t, opt.Step())

	assert.Equal(t, 2.0, before.At(0, 0), "previous value is not written in place")
	assert.Same(t, p.Value(), leaf.Value())
	assert.InDelta(t, 1.5, leaf.Value().At(0, 0), 1e-12)
}

func TestSGD_GetSetLR(t *testing.T) {
	opt := optim.NewSGD(nil, optim.SGDConfig{LR: 0.1})
	assert.Equal(t, 0.1, opt.GetLR())
	opt.SetLR(0.01)
	assert.Equal(t, 0.01, opt.GetLR())
}

func TestSGD_StateDict(t *testing.T) {
	p := optim.NewParameter("w", must.M1(tensor.FromRows([][]float64{{1, 2}})))
	opt := optim.NewSGD([]*optim.Parameter{p}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	assert.Empty(t, opt.StateDict())

	unitStep(t, opt, p)
	state := opt.StateDict()
	require.Contains(t, state, "velocity.0")
	assert.Equal(t, [][]float64{{1, 1}}, state["velocity.0"].Rows())

	// A restored optimizer continues with the saved velocity.
	restored := optim.NewSGD([]*optim.Parameter{p}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, restored.LoadStateDict(state))
	unitStep(t, restored, p)
	// v = 0.9 * 1 + 1 = 1.9; w = (0.9, 1.9) - 0.19
	assert.InDelta(t, 0.71, p.Value().At(0, 0), 1e-12)
	assert.InDelta(t, 1.71, p.Value().At(0, 1), 1e-12)

	bad := map[string]*tensor.Matrix{"velocity.0": must.M1(tensor.Zeros(2, 1))}
	assert.ErrorIs(t, restored.LoadStateDict(bad), tensor.ErrShape)
}

func TestAdam_SimpleUpdate(t *testing.T) {
	p := scalarParam("x", 1)
	opt := optim.NewAdam([]*optim.Parameter{p}, optim.AdamConfig{LR: 0.1})

	// After bias correction the first step moves by lr * sign(grad).
	unitStep(t, opt, p)
	assert.InDelta(t, 0.9, p.Value().At(0, 0), 1e-6)
	assert.Equal(t, 1, opt.Timestep())

	// A constant gradient keeps m_hat / sqrt(v_hat) at one.
	unitStep(t, opt, p)
	assert.InDelta(t, 0.8, p.Value().At(0, 0), 1e-6)
	assert.Equal(t, 2, opt.Timestep())
}

func TestAdam_Defaults(t *testing.T) {
	opt := optim.NewAdam(nil, optim.AdamConfig{})
	assert.Equal(t, 0.001, opt.GetLR())
	opt.SetLR(0.01)
	assert.Equal(t, 0.01, opt.GetLR())
	require.NoError(t, opt.Step())
	assert.Equal(t, 1, opt.Timestep())
}

func TestZeroGrad(t *testing.T) {
	p := scalarParam("x", 1)
	for _, opt := range []optim.Optimizer{
		optim.NewSGD([]*optim.Parameter{p}, optim.SGDConfig{}),
		optim.NewAdam([]*optim.Parameter{p}, optim.AdamConfig{}),
	} {
		g := autodiff.NewMatrixGraph()
		require.NoError(t, p.Bind(g).RunBackward())
		require.Equal(t, 1.0, p.Grad().At(0, 0))

		opt.ZeroGrad()
		assert.Equal(t, 0.0, p.Grad().At(0, 0))
	}
}

// linearLoss returns mean((X@w - y)^2) for y = 2x + 1, where X carries a
// column of ones for the bias.
func linearLoss(g *autodiff.MatrixGraph, w *autodiff.Matrix) (*autodiff.Matrix, error) {
	x := must.M1(autodiff.MatrixFromRows(g, [][]float64{{1, 1}, {2, 1}, {3, 1}, {4, 1}}))
	y := must.M1(autodiff.MatrixFromRows(g, [][]float64{{3}, {5}, {7}, {9}}))
	pred, err := x.MatMul(w)
	if err != nil {
		return nil, err
	}
	residual, err := pred.Sub(y)
	if err != nil {
		return nil, err
	}
	sq, err := residual.Pow(2)
	if err != nil {
		return nil, err
	}
	return sq.Div(4)
}

func train(t *testing.T, opt optim.Optimizer, w *optim.Parameter, steps int) (first, last float64) {
	t.Helper()
	for i := 0; i < steps; i++ {
		g := autodiff.NewMatrixGraph()
		loss := must.M1(linearLoss(g, w.Bind(g)))
		require.NoError(t, loss.RunBackward())
		require.NoError(t, opt.Step())

		if i == 0 {
			first = loss.Value().Sum()
		}
		last = loss.Value().Sum()
	}
	return first, last
}

func TestConvergence_LinearRegression(t *testing.T) {
	tests := []struct {
		name    string
		opt     func(params []*optim.Parameter) optim.Optimizer
		maxLoss float64
	}{
		{"sgd", func(p []*optim.Parameter) optim.Optimizer {
			return optim.NewSGD(p, optim.SGDConfig{LR: 0.05})
		}, 1e-3},
		{"sgd momentum", func(p []*optim.Parameter) optim.Optimizer {
			return optim.NewSGD(p, optim.SGDConfig{LR: 0.01, Momentum: 0.9})
		}, 1e-3},
		{"adam", func(p []*optim.Parameter) optim.Optimizer {
			return optim.NewAdam(p, optim.AdamConfig{LR: 0.05})
		}, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := optim.NewParameter("w", must.M1(tensor.Zeros(2, 1)))
			first, last := train(t, tt.opt([]*optim.Parameter{w}), w, 1000)

			assert.InDelta(t, 41.0, first, 1e-12)
			assert.Less(t, last, tt.maxLoss)
			if tt.maxLoss < 0.01 {
				assert.InDelta(t, 2.0, w.Value().At(0, 0), 0.05)
				assert.InDelta(t, 1.0, w.Value().At(1, 0), 0.05)
			}
		})
	}
}

func TestParameter_SetValue(t *testing.T) {
	p := scalarParam("x", 1)
	g := autodiff.NewMatrixGraph()
	leaf := p.Bind(g)

	v := must.M1(tensor.Full(1, 1, 4))
	require.NoError(t, p.SetValue(v))
	assert.Same(t, v, p.Value())
	assert.Same(t, v, leaf.Value())

	assert.ErrorIs(t, p.SetValue(must.M1(tensor.Zeros(2, 2))), tensor.ErrShape)
	assert.Same(t, v, p.Value())
}
