package storage

import (
	"database/sql"
	"time"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

// cardRow is the database representation of a card. Stability, difficulty
// and last_reviewed_at are NULL until the first review.
type cardRow struct {
	ID               string          `db:"id"`
	Word             string          `db:"word"`
	Sentence         string          `db:"sentence"`
	OriginalSentence string          `db:"original_sentence"`
	State            string          `db:"state"`
	Step             int             `db:"step"`
	Stability        sql.NullFloat64 `db:"stability"`
	Difficulty       sql.NullFloat64 `db:"difficulty"`
	DueDate          time.Time       `db:"due_date"`
	CreatedAt        time.Time       `db:"created_at"`
	LastReviewedAt   sql.NullTime    `db:"last_reviewed_at"`
	ReviewCount      int             `db:"review_count"`
}

func newCardRow(card scheduler.Card) cardRow {
	row := cardRow{
		ID:               card.ID,
		Word:             card.Word,
		Sentence:         card.Sentence,
		OriginalSentence: card.OriginalSentence,
		State:            string(card.State),
		Step:             card.Step,
		DueDate:          card.Due,
		CreatedAt:        card.CreatedAt,
		ReviewCount:      card.ReviewCount,
	}
	if card.Memory != nil {
		row.Stability = sql.NullFloat64{Float64: card.Memory.Stability, Valid: true}
		row.Difficulty = sql.NullFloat64{Float64: card.Memory.Difficulty, Valid: true}
	}
	if card.LastReviewedAt != nil {
		row.LastReviewedAt = sql.NullTime{Time: *card.LastReviewedAt, Valid: true}
	}
	return row
}

func (r cardRow) toCard() scheduler.Card {
	card := scheduler.Card{
		ID:               r.ID,
		Word:             r.Word,
		Sentence:         r.Sentence,
		OriginalSentence: r.OriginalSentence,
		State:            scheduler.State(r.State),
		Step:             r.Step,
		Due:              r.DueDate,
		CreatedAt:        r.CreatedAt,
		ReviewCount:      r.ReviewCount,
	}
	if r.Stability.Valid && r.Difficulty.Valid {
		card.Memory = &scheduler.MemoryState{
			Stability:  r.Stability.Float64,
			Difficulty: r.Difficulty.Float64,
		}
	}
	if r.LastReviewedAt.Valid {
		t := r.LastReviewedAt.Time
		card.LastReviewedAt = &t
	}
	return card
}

// reviewLogRow is the database representation of a review log.
type reviewLogRow struct {
	ID          string    `db:"id"`
	CardID      string    `db:"card_id"`
	ReviewedAt  time.Time `db:"reviewed_at"`
	Rating      int       `db:"rating"`
	ElapsedDays float64   `db:"elapsed_days"`
	Stability   float64   `db:"stability"`
	Difficulty  float64   `db:"difficulty"`
}

func newReviewLogRow(log scheduler.ReviewLog) reviewLogRow {
	return reviewLogRow{
		ID:          log.ID,
		CardID:      log.CardID,
		ReviewedAt:  log.ReviewedAt,
		Rating:      int(log.Rating),
		ElapsedDays: log.ElapsedDays,
		Stability:   log.Stability,
		Difficulty:  log.Difficulty,
	}
}

func (r reviewLogRow) toReviewLog() scheduler.ReviewLog {
	return scheduler.ReviewLog{
		ID:          r.ID,
		CardID:      r.CardID,
		ReviewedAt:  r.ReviewedAt,
		Rating:      scheduler.Rating(r.Rating),
		ElapsedDays: r.ElapsedDays,
		Stability:   r.Stability,
		Difficulty:  r.Difficulty,
	}
}
