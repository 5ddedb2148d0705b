package optimizer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

func TestBCELoss(t *testing.T) {
	t.Run("confident correct prediction is near zero", func(t *testing.T) {
		assert.InDelta(t, 0, bceLoss(0.999, 1), 0.01)
		assert.InDelta(t, 0, bceLoss(0.001, 0), 0.01)
	})

	t.Run("confident wrong prediction is large", func(t *testing.T) {
		assert.Greater(t, bceLoss(0.999, 0), 5.0)
		assert.Greater(t, bceLoss(0.001, 1), 5.0)
	})

	t.Run("stays finite at the extremes", func(t *testing.T) {
		for _, predicted := range []float64{0, 1} {
			for _, label := range []float64{0, 1} {
				loss := bceLoss(predicted, label)
				assert.False(t, math.IsInf(loss, 0), "p=%v y=%v", predicted, label)
				assert.False(t, math.IsNaN(loss), "p=%v y=%v", predicted, label)
			}
		}
	})

	t.Run("uncertain prediction sits at ln 2", func(t *testing.T) {
		assert.InDelta(t, math.Ln2, bceLoss(0.5, 1), 1e-9)
		assert.InDelta(t, math.Ln2, bceLoss(0.5, 0), 1e-9)
	})
}

func TestBatchLoss(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	t.Run("zero without scorable reviews", func(t *testing.T) {
		assert.Equal(t, 0.0, batchLoss(scheduler.DefaultWeights, nil))

		// A single first review updates memory but is never scored.
		dataset := buildDataset([]scheduler.ReviewLog{
			{CardID: "a", ReviewedAt: base, Rating: scheduler.RatingGood},
		})
		assert.Equal(t, 0.0, batchLoss(scheduler.DefaultWeights, dataset))
	})

	t.Run("rewards accurate predictions", func(t *testing.T) {
		// Every card is recalled shortly after its stability horizon, where
		// the model predicts roughly 90%. All-success outcomes should score
		// clearly better than chance.
		var logs []scheduler.ReviewLog
		for _, cardID := range []string{"a", "b", "c"} {
			logs = append(logs,
				scheduler.ReviewLog{CardID: cardID, ReviewedAt: base, Rating: scheduler.RatingGood},
				scheduler.ReviewLog{CardID: cardID, ReviewedAt: base.Add(3 * 24 * time.Hour), Rating: scheduler.RatingGood},
			)
		}
		loss := batchLoss(scheduler.DefaultWeights, buildDataset(logs))
		assert.Greater(t, loss, 0.0)
		assert.Less(t, loss, math.Ln2)
	})
}

func TestNumericalGradient(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	var logs []scheduler.ReviewLog
	for i, cardID := range []string{"a", "b", "c", "d"} {
		rating := scheduler.RatingGood
		if i%2 == 0 {
			rating = scheduler.RatingAgain
		}
		logs = append(logs,
			scheduler.ReviewLog{CardID: cardID, ReviewedAt: base, Rating: scheduler.RatingGood},
			scheduler.ReviewLog{CardID: cardID, ReviewedAt: base.Add(5 * 24 * time.Hour), Rating: rating},
		)
	}
	dataset := buildDataset(logs)

	grad := numericalGradient(scheduler.DefaultWeights, dataset)

	var nonZero int
	for i := 0; i < scheduler.NumWeights; i++ {
		assert.False(t, math.IsNaN(grad[i]), "w[%d]", i)
		assert.False(t, math.IsInf(grad[i], 0), "w[%d]", i)
		if grad[i] != 0 {
			nonZero++
		}
	}
	// The initial-stability and growth weights all influence the second
	// review's prediction, so the gradient cannot be flat.
	assert.Greater(t, nonZero, 0)
}
