package scheduler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NumWeights is the number of free parameters of the memory model.
const NumWeights = 19

// Weights is the global parameter vector of the memory model: initial
// stability per rating (w0-w3), initial difficulty (w4-w5), difficulty
// update (w6-w7), stability growth on success (w8-w10, w15-w16), stability
// decay on failure (w11-w14), and same-day stability change (w17-w18).
type Weights [NumWeights]float64

// DefaultWeights is used until a learner has enough history to fit their own
// vector with the optimizer.
var DefaultWeights = Weights{
	0.4072, 1.1829, 3.1262, 15.4722,
	7.2102, 0.5316,
	1.0651, 0.0234,
	1.616, 0.1544, 1.0824,
	1.9813, 0.0953, 0.2975, 2.2042,
	0.2407, 2.9466,
	0.5034, 0.6567,
}

// LowerBounds and UpperBounds define the box the memory model is numerically
// well-behaved in. The optimizer clamps candidate vectors into this box and
// the scheduler rejects vectors outside it.
var (
	LowerBounds = Weights{
		0.001, 0.001, 0.001, 0.001,
		1.0, 0.001,
		0.001, 0.0,
		0.0, 0.0, 0.001,
		0.001, 0.001, 0.001, 0.0,
		0.0, 1.0,
		0.0, 0.0,
	}
	UpperBounds = Weights{
		100.0, 100.0, 100.0, 100.0,
		10.0, 5.0,
		5.0, 0.75,
		4.5, 0.8, 3.5,
		5.0, 0.25, 0.9, 4.0,
		1.0, 6.0,
		2.0, 2.0,
	}
)

// Validate checks that every weight is within [LowerBounds, UpperBounds].
func (w Weights) Validate() error {
	for i := 0; i < NumWeights; i++ {
		if w[i] < LowerBounds[i] || w[i] > UpperBounds[i] {
			return fmt.Errorf("%w: w[%d] = %v, bounds [%v, %v]",
				ErrInvalidWeights, i, w[i], LowerBounds[i], UpperBounds[i])
		}
	}
	return nil
}

// Clamp constrains every weight into [LowerBounds, UpperBounds].
func (w Weights) Clamp() Weights {
	for i := 0; i < NumWeights; i++ {
		if w[i] < LowerBounds[i] {
			w[i] = LowerBounds[i]
		}
		if w[i] > UpperBounds[i] {
			w[i] = UpperBounds[i]
		}
	}
	return w
}

type weightsFile struct {
	Weights []float64 `yaml:"weights"`
}

// LoadWeightsFile reads a fitted weight vector written by SaveWeightsFile.
func LoadWeightsFile(path string) (Weights, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var file weightsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return Weights{}, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	if len(file.Weights) != NumWeights {
		return Weights{}, fmt.Errorf("%w: %s holds %d weights, want %d",
			ErrInvalidWeights, path, len(file.Weights), NumWeights)
	}

	var w Weights
	copy(w[:], file.Weights)
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// SaveWeightsFile persists a fitted weight vector as YAML.
func SaveWeightsFile(path string, w Weights) error {
	content, err := yaml.Marshal(weightsFile{Weights: w[:]})
	if err != nil {
		return fmt.Errorf("yaml.Marshal() > %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}
