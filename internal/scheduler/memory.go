package scheduler

import "math"

// The forgetting curve is the power law R(t, S) = (1 + factor*t/S)^decay.
// With decay = -0.5 the factor is chosen so that R(S, S) = 0.9: stability is
// the number of days after which recall probability has dropped to 90%.
const (
	forgettingDecay  = -0.5
	forgettingFactor = 19.0 / 81.0 // 0.9^(1/decay) - 1

	minStability  = 0.001
	minDifficulty = 1.0
	maxDifficulty = 10.0
)

func retrievability(elapsedDays, stability float64) float64 {
	if elapsedDays <= 0 {
		return 1
	}
	return math.Pow(1+forgettingFactor*elapsedDays/stability, forgettingDecay)
}

// nextIntervalDays solves R(t, stability) == desiredRetention for t, the
// closed-form inverse of the forgetting curve.
func nextIntervalDays(stability, desiredRetention float64) float64 {
	return stability / forgettingFactor * (math.Pow(desiredRetention, 1/forgettingDecay) - 1)
}

// UpdateMemory applies one review to a card's memory state. A nil prior means
// the first review of a new card: stability and difficulty are then derived
// from the rating alone. Reviews within the same day use the short-term
// formula; cross-day reviews use the forgetting curve.
func (w Weights) UpdateMemory(prior *MemoryState, elapsedDays float64, rating Rating) (MemoryState, error) {
	if !rating.IsValid() {
		return MemoryState{}, ErrInvalidRating
	}

	var next MemoryState
	if prior == nil {
		next = MemoryState{
			Stability:  clampStability(w.initialStability(rating)),
			Difficulty: clampDifficulty(w.initialDifficulty(rating)),
		}
	} else {
		var stability float64
		if elapsedDays < 1 {
			stability = w.shortTermStability(prior.Stability, rating)
		} else if rating == RatingAgain {
			stability = w.forgetStability(prior.Difficulty, prior.Stability, prior.Retrievability(elapsedDays))
		} else {
			stability = w.recallStability(prior.Difficulty, prior.Stability, prior.Retrievability(elapsedDays), rating)
		}
		next = MemoryState{
			Stability:  clampStability(stability),
			Difficulty: clampDifficulty(w.nextDifficulty(prior.Difficulty, rating)),
		}
	}

	if !isFinite(next.Stability) || !isFinite(next.Difficulty) {
		return MemoryState{}, ErrNumericDomain
	}
	return next, nil
}

// initialStability is S0(G) = w[G-1].
func (w Weights) initialStability(rating Rating) float64 {
	return w[rating-1]
}

// initialDifficulty is D0(G) = w4 - (G-3)*w5, so Good starts at w4 and the
// other ratings offset from it.
func (w Weights) initialDifficulty(rating Rating) float64 {
	return w[4] - float64(rating-RatingGood)*w[5]
}

// recallStability grows stability after a successful cross-day recall. The
// growth factor increases as retrievability decreases, shrinks as difficulty
// rises, and is modulated by the hard penalty w15 and easy bonus w16.
func (w Weights) recallStability(difficulty, stability, retr float64, rating Rating) float64 {
	hardPenalty := 1.0
	if rating == RatingHard {
		hardPenalty = w[15]
	}
	easyBonus := 1.0
	if rating == RatingEasy {
		easyBonus = w[16]
	}
	return stability * (1 + math.Exp(w[8])*
		(11-difficulty)*
		math.Pow(stability, -w[9])*
		(math.Exp((1-retr)*w[10])-1)*
		hardPenalty*easyBonus)
}

// forgetStability computes post-lapse stability. The result never exceeds
// the prior stability: forgetting cannot strengthen memory.
func (w Weights) forgetStability(difficulty, stability, retr float64) float64 {
	next := w[11] *
		math.Pow(difficulty, -w[12]) *
		(math.Pow(stability+1, w[13]) - 1) *
		math.Exp((1-retr)*w[14])
	return math.Min(next, stability)
}

// shortTermStability handles same-day reviews, where the forgetting curve has
// no signal yet: S' = S * e^(w17 * (G - 3 + w18)), capped at the prior
// stability for a failed recall.
func (w Weights) shortTermStability(stability float64, rating Rating) float64 {
	next := stability * math.Exp(w[17]*(float64(rating-RatingGood)+w[18]))
	if rating == RatingAgain {
		return math.Min(next, stability)
	}
	return next
}

// nextDifficulty moves difficulty by the rating delta, then reverts toward
// the initial Good difficulty w4 with mean-reversion weight w7.
func (w Weights) nextDifficulty(difficulty float64, rating Rating) float64 {
	updated := difficulty - w[6]*float64(rating-RatingGood)
	return w[7]*w[4] + (1-w[7])*updated
}

func clampStability(s float64) float64 {
	return math.Max(s, minStability)
}

func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, minDifficulty), maxDifficulty)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
