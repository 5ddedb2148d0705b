// Package optimizer fits the memory-model weight vector to a learner's own
// review history by minimizing the binary cross-entropy between predicted
// retrievability and observed recall outcomes.
package optimizer

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

var (
	// ErrEmptyLogs is returned when no review logs are provided at all.
	ErrEmptyLogs = errors.New("optimizer: no review logs provided")

	// ErrInsufficientData is returned when the history holds too few
	// cross-day reviews for fitting to beat the default weights.
	ErrInsufficientData = errors.New("optimizer: insufficient cross-day reviews")
)

const (
	// DefaultMinReviews is the minimum number of cross-day reviews required
	// before fitting is attempted.
	DefaultMinReviews = 50

	defaultEpochs        = 5
	defaultMiniBatchSize = 512
	defaultLearningRate  = 0.04
	defaultMaxSeqLen     = 64

	// shuffleSeed fixes the mini-batch order so that two runs over the same
	// history produce the same weights.
	shuffleSeed = 42
)

// Config configures the fit. Zero values are replaced with defaults.
type Config struct {
	Epochs        int     `yaml:"epochs"`          // zero: 5
	MiniBatchSize int     `yaml:"mini_batch_size"` // zero: 512
	LearningRate  float64 `yaml:"learning_rate"`   // zero: 0.04
	MaxSeqLen     int     `yaml:"max_seq_len"`     // zero: 64, per-card history cap
	MinReviews    int     `yaml:"min_reviews"`     // zero: 50
}

// Optimizer fits weight vectors with mini-batch gradient descent, using
// numerical central-difference gradients, Adam and a cosine-annealed
// learning rate.
type Optimizer struct {
	epochs        int
	miniBatchSize int
	learningRate  float64
	maxSeqLen     int
	minReviews    int
	logger        *slog.Logger
}

// New creates an Optimizer. A nil logger disables progress logging.
func New(cfg Config, logger *slog.Logger) *Optimizer {
	o := &Optimizer{
		epochs:        cfg.Epochs,
		miniBatchSize: cfg.MiniBatchSize,
		learningRate:  cfg.LearningRate,
		maxSeqLen:     cfg.MaxSeqLen,
		minReviews:    cfg.MinReviews,
		logger:        logger,
	}
	if o.epochs == 0 {
		o.epochs = defaultEpochs
	}
	if o.miniBatchSize == 0 {
		o.miniBatchSize = defaultMiniBatchSize
	}
	if o.learningRate == 0 {
		o.learningRate = defaultLearningRate
	}
	if o.maxSeqLen == 0 {
		o.maxSeqLen = defaultMaxSeqLen
	}
	if o.minReviews == 0 {
		o.minReviews = DefaultMinReviews
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Fit computes a weight vector from the review history, starting from the
// default weights. The result is deterministic for a given history and
// config. When ctx is cancelled mid-fit, Fit returns the best weights found
// so far together with the context's error.
//
// Returns ErrEmptyLogs for an empty history and ErrInsufficientData (along
// with the default weights) when the history holds fewer cross-day reviews
// than the configured minimum.
func (o *Optimizer) Fit(ctx context.Context, logs []scheduler.ReviewLog) (scheduler.Weights, error) {
	if len(logs) == 0 {
		return scheduler.Weights{}, ErrEmptyLogs
	}

	dataset := buildDataset(logs)
	for i, sequence := range dataset {
		if len(sequence.reviews) > o.maxSeqLen {
			dataset[i].reviews = sequence.reviews[:o.maxSeqLen]
		}
	}

	numReviews := countCrossDayReviews(dataset)
	if numReviews < o.minReviews {
		return scheduler.DefaultWeights, ErrInsufficientData
	}

	weights := scheduler.DefaultWeights
	tMax := int(math.Ceil(float64(numReviews)/float64(o.miniBatchSize))) * o.epochs
	opt := newAdam(o.learningRate)
	schedule := newCosineAnnealing(o.learningRate, tMax)
	rng := rand.New(rand.NewSource(shuffleSeed))

	bestWeights := weights
	bestLoss := math.Inf(1)

	batch := make([]cardSequence, 0, len(dataset))
	for epoch := 0; epoch < o.epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return bestWeights, err
		}

		// buildDataset sorts by card ID, so the seeded shuffle walks the
		// same batch order on every run over the same history.
		rng.Shuffle(len(dataset), func(i, j int) {
			dataset[i], dataset[j] = dataset[j], dataset[i]
		})

		batch = batch[:0]
		batchReviews := 0
		for _, sequence := range dataset {
			batch = append(batch, sequence)
			batchReviews += sequence.crossDayReviews()

			if batchReviews >= o.miniBatchSize {
				weights = o.descend(opt, schedule, weights, batch)
				batch = batch[:0]
				batchReviews = 0
			}
		}
		if batchReviews > 0 {
			weights = o.descend(opt, schedule, weights, batch)
		}

		epochLoss := batchLoss(weights, dataset)
		o.logger.Debug("optimizer epoch finished",
			slog.Int("epoch", epoch+1),
			slog.Float64("loss", epochLoss),
		)
		if epochLoss < bestLoss {
			bestLoss = epochLoss
			bestWeights = weights
		}
	}

	return bestWeights, nil
}

// Loss computes the average BCE loss of a weight vector over a review
// history, for comparing a fitted vector against the defaults.
func (o *Optimizer) Loss(weights scheduler.Weights, logs []scheduler.ReviewLog) float64 {
	return batchLoss(weights, buildDataset(logs))
}

// descend applies one mini-batch gradient step and clamps the result back
// into the weight bounds.
func (o *Optimizer) descend(opt *adam, schedule *cosineAnnealing, weights scheduler.Weights, batch []cardSequence) scheduler.Weights {
	grad := numericalGradient(weights, batch)
	opt.setLR(schedule.lr())
	weights = opt.update(weights, grad).Clamp()
	schedule.next()
	return weights
}
