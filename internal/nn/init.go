package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/microdiff/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes a rows × cols matrix with values drawn from
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))), where fan_in is
// rows and fan_out is cols. rng may be nil to use the global source.
func Xavier(rows, cols int, rng *rand.Rand) (*tensor.Matrix, error) {
	bound := math.Sqrt(6.0 / float64(rows+cols))
	uniform := rand.Float64
	if rng != nil {
		uniform = rng.Float64
	}

	data := make([]float64, max(rows*cols, 0))
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		data[i] = (uniform()*2.0 - 1.0) * bound
	}
	return tensor.New(rows, cols, data)
}
