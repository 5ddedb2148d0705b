package optimizer

import (
	"sort"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

// trainingReview is one review event reduced to what the loss needs: how long
// since the previous review, what the learner answered, and whether the
// answer counts as a successful recall.
type trainingReview struct {
	rating      scheduler.Rating
	elapsedDays float64 // days since the previous review of the same card
	label       float64 // 1 for a successful recall, 0 for a lapse
}

// cardSequence is one card's reviews in chronological order. The dataset is
// a slice sorted by card ID, not a map: the loss sums floats per card, and a
// run-dependent iteration order would leak through the central-difference
// gradient into different fitted weights.
type cardSequence struct {
	cardID  string
	reviews []trainingReview
}

// crossDayReviews counts the reviews of this card that contribute to the
// loss: reviews at least one day after the previous one. The first review
// has no prediction to score and never counts.
func (s cardSequence) crossDayReviews() int {
	count := 0
	for i, review := range s.reviews {
		if i > 0 && review.elapsedDays >= 1 {
			count++
		}
	}
	return count
}

// buildDataset groups review logs by card, orders each card's reviews
// chronologically and the cards by ID. Elapsed days are recomputed from
// successive timestamps so that the dataset is self-consistent even if the
// stored logs disagree.
func buildDataset(logs []scheduler.ReviewLog) []cardSequence {
	if len(logs) == 0 {
		return nil
	}

	groups := make(map[string][]scheduler.ReviewLog)
	for _, log := range logs {
		groups[log.CardID] = append(groups[log.CardID], log)
	}

	dataset := make([]cardSequence, 0, len(groups))
	for cardID, cardLogs := range groups {
		sort.Slice(cardLogs, func(i, j int) bool {
			return cardLogs[i].ReviewedAt.Before(cardLogs[j].ReviewedAt)
		})

		reviews := make([]trainingReview, len(cardLogs))
		for i, log := range cardLogs {
			var elapsed float64
			if i > 0 {
				elapsed = log.ReviewedAt.Sub(cardLogs[i-1].ReviewedAt).Hours() / 24
			}

			label := 0.0
			if log.Rating.Succeeded() {
				label = 1.0
			}

			reviews[i] = trainingReview{
				rating:      log.Rating,
				elapsedDays: elapsed,
				label:       label,
			}
		}
		dataset = append(dataset, cardSequence{cardID: cardID, reviews: reviews})
	}

	sort.Slice(dataset, func(i, j int) bool {
		return dataset[i].cardID < dataset[j].cardID
	})
	return dataset
}

// countCrossDayReviews counts the reviews that contribute to the loss across
// the whole dataset.
func countCrossDayReviews(dataset []cardSequence) int {
	count := 0
	for _, sequence := range dataset {
		count += sequence.crossDayReviews()
	}
	return count
}
