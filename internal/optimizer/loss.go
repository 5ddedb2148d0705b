package optimizer

import (
	"math"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

const (
	// bceClamp keeps predictions away from 0 and 1 so the log terms stay
	// finite.
	bceClamp = 1e-7

	// gradEps is the probe size for central-difference gradients.
	gradEps = 1e-5
)

// bceLoss is the binary cross-entropy -[y*ln(p) + (1-y)*ln(1-p)].
func bceLoss(predicted, label float64) float64 {
	p := math.Max(bceClamp, math.Min(predicted, 1-bceClamp))
	return -(label*math.Log(p) + (1-label)*math.Log(1-p))
}

// batchLoss replays every card's history under the candidate weights and
// averages the BCE loss of the predicted retrievability against the observed
// outcome. Same-day reviews and the first review of each card update the
// memory state but are never scored, since the forgetting curve predicts
// nothing about them. Returns 0 when no review is scorable.
//
// The dataset slice fixes the accumulation order of total, keeping the loss
// bit-for-bit reproducible for the same input.
func batchLoss(weights scheduler.Weights, dataset []cardSequence) float64 {
	var total float64
	var count int

	for _, sequence := range dataset {
		var memory *scheduler.MemoryState
		for i, review := range sequence.reviews {
			if memory != nil && i > 0 && review.elapsedDays >= 1 {
				predicted := memory.Retrievability(review.elapsedDays)
				total += bceLoss(predicted, review.label)
				count++
			}

			next, err := weights.UpdateMemory(memory, review.elapsedDays, review.rating)
			if err != nil {
				// A corrupt log or a numerically hostile candidate vector.
				// Stop replaying this card; its remaining reviews would only
				// amplify the damage.
				break
			}
			memory = &next
		}
	}

	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// numericalGradient estimates dLoss/dw by central differences, probing each
// weight independently.
func numericalGradient(weights scheduler.Weights, dataset []cardSequence) scheduler.Weights {
	var grad scheduler.Weights
	for i := 0; i < scheduler.NumWeights; i++ {
		plus := weights
		plus[i] += gradEps
		minus := weights
		minus[i] -= gradEps

		grad[i] = (batchLoss(plus, dataset) - batchLoss(minus, dataset)) / (2 * gradEps)
	}
	return grad
}
