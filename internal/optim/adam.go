package optim

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	params []*Parameter
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int                      // Timestep for bias correction
	m      map[*Parameter][]float64 // First moment estimates
	v      map[*Parameter][]float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64 // Learning rate (default: 0.001)
	Beta1 float64 // First moment decay (default: 0.9)
	Beta2 float64 // Second moment decay (default: 0.999)
	Eps   float64 // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer. Zero config fields take their
// defaults.
func NewAdam(params []*Parameter, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Beta1 == 0 {
		config.Beta1 = 0.9
	}
	if config.Beta2 == 0 {
		config.Beta2 = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Beta1,
		beta2:  config.Beta2,
		eps:    config.Eps,
		m:      make(map[*Parameter][]float64),
		v:      make(map[*Parameter][]float64),
	}
}

// Step performs a single optimization step using Adam algorithm.
//
// The timestep advances once per call, even if no parameter is bound.
func (a *Adam) Step() error {
	a.t++
	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))
	klog.V(2).Infof("adam: step t=%d lr=%g params=%d", a.t, a.lr, len(a.params))

	for _, p := range a.params {
		grad := p.Grad()
		if grad == nil {
			continue
		}
		g := grad.Data()

		m, exists := a.m[p]
		if !exists {
			m = make([]float64, len(g))
			a.m[p] = m
		}
		v, exists := a.v[p]
		if !exists {
			v = make([]float64, len(g))
			a.v[p] = v
		}

		// m_t = beta1 * m_{t-1} + (1-beta1) * grad
		floats.Scale(a.beta1, m)
		floats.AddScaled(m, 1-a.beta1, g)

		value := p.value.Data()
		for i, gi := range g {
			v[i] = a.beta2*v[i] + (1-a.beta2)*gi*gi
			mHat := m[i] / biasCorrection1
			vHat := v[i] / biasCorrection2
			value[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
		if err := p.setData(value); err != nil {
			return errors.WithMessagef(err, "adam: updating %q", p.name)
		}
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// Timestep returns the number of steps taken.
func (a *Adam) Timestep() int {
	return a.t
}
