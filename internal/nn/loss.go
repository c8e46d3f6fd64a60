package nn

import (
	"github.com/born-ml/microdiff/internal/autodiff"
	"github.com/born-ml/microdiff/internal/tensor"
	"github.com/pkg/errors"
)

// MSELoss computes mean squared error.
//
// Loss = mean((predictions - targets)²)
//
// Forward returns the per-entry terms (predictions - targets)² / n, a node
// of the predictions' shape. Its entries sum to the loss, which is what
// RunBackward differentiates:
//
//	loss, _ := nn.MSELoss(pred, target)
//	_ = loss.RunBackward()
//	fmt.Println(loss.Value().Sum())
func MSELoss(predictions, targets *autodiff.Matrix) (*autodiff.Matrix, error) {
	ps, ts := predictions.Value().Shape(), targets.Value().Shape()
	if !ps.Equal(ts) {
		return nil, errors.Wrapf(tensor.ErrShape, "mse: predictions %s and targets %s", ps, ts)
	}

	diff, err := predictions.Sub(targets)
	if err != nil {
		return nil, err
	}
	squared, err := diff.Pow(2)
	if err != nil {
		return nil, err
	}
	return squared.Div(float64(ps.NumElements()))
}
