package optimizer

import (
	"math"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

// adam is the Adam optimizer with bias correction:
//
//	m[i] = b1*m[i] + (1-b1)*g[i]
//	v[i] = b2*v[i] + (1-b2)*g[i]^2
//	w[i] = w[i] - lr * (m[i]/(1-b1^t)) / (sqrt(v[i]/(1-b2^t)) + eps)
type adam struct {
	lr           float64
	beta1, beta2 float64
	eps          float64
	m, v         scheduler.Weights
	step         int
}

func newAdam(lr float64) *adam {
	return &adam{
		lr:    lr,
		beta1: 0.9,
		beta2: 0.999,
		eps:   1e-8,
	}
}

// update applies one Adam step to the weights. Weights with a zero gradient
// are left untouched.
func (a *adam) update(weights, grad scheduler.Weights) scheduler.Weights {
	a.step++

	for i := 0; i < scheduler.NumWeights; i++ {
		g := grad[i]
		if g == 0 {
			continue
		}

		a.m[i] = a.beta1*a.m[i] + (1-a.beta1)*g
		a.v[i] = a.beta2*a.v[i] + (1-a.beta2)*g*g

		mHat := a.m[i] / (1 - math.Pow(a.beta1, float64(a.step)))
		vHat := a.v[i] / (1 - math.Pow(a.beta2, float64(a.step)))

		weights[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
	}
	return weights
}

func (a *adam) setLR(lr float64) {
	a.lr = lr
}

// cosineAnnealing decays the learning rate along half a cosine wave:
// lr(t) = 0.5 * lrMax * (1 + cos(pi * t / tMax)).
type cosineAnnealing struct {
	lrMax float64
	tMax  int
	t     int
}

func newCosineAnnealing(lrMax float64, tMax int) *cosineAnnealing {
	return &cosineAnnealing{lrMax: lrMax, tMax: tMax}
}

func (c *cosineAnnealing) lr() float64 {
	return 0.5 * c.lrMax * (1 + math.Cos(math.Pi*float64(c.t)/float64(c.tMax)))
}

func (c *cosineAnnealing) next() {
	if c.t < c.tMax {
		c.t++
	}
}
