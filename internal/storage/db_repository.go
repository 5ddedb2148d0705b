package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

// DBCardRepository implements CardRepository using MySQL.
type DBCardRepository struct {
	db *sqlx.DB
}

// NewDBCardRepository creates a new DBCardRepository.
func NewDBCardRepository(db *sqlx.DB) *DBCardRepository {
	return &DBCardRepository{db: db}
}

// Create inserts a new card.
func (r *DBCardRepository) Create(ctx context.Context, card scheduler.Card) error {
	row := newCardRow(card)
	if _, err := r.db.NamedExecContext(ctx,
		`INSERT INTO cards (id, word, sentence, original_sentence, state, step,
			stability, difficulty, due_date, created_at, last_reviewed_at, review_count)
		VALUES (:id, :word, :sentence, :original_sentence, :state, :step,
			:stability, :difficulty, :due_date, :created_at, :last_reviewed_at, :review_count)`,
		row); err != nil {
		return fmt.Errorf("db.NamedExecContext(insert card) > %w", err)
	}
	return nil
}

// FindByID returns the card with the given ID, or nil if not found.
func (r *DBCardRepository) FindByID(ctx context.Context, id string) (*scheduler.Card, error) {
	var row cardRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM cards WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(card) > %w", err)
	}
	card := row.toCard()
	return &card, nil
}

// FindAll returns all cards ordered by creation time.
func (r *DBCardRepository) FindAll(ctx context.Context) ([]scheduler.Card, error) {
	var rows []cardRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM cards ORDER BY created_at, id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(cards) > %w", err)
	}
	return toCards(rows), nil
}

// FindDue returns all cards whose due date has passed, most overdue first.
func (r *DBCardRepository) FindDue(ctx context.Context, now time.Time) ([]scheduler.Card, error) {
	var rows []cardRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM cards WHERE due_date <= ? ORDER BY due_date", now); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due cards) > %w", err)
	}
	return toCards(rows), nil
}

// Update overwrites the card's mutable fields.
func (r *DBCardRepository) Update(ctx context.Context, card scheduler.Card) error {
	row := newCardRow(card)
	if _, err := r.db.NamedExecContext(ctx,
		`UPDATE cards SET sentence = :sentence, state = :state, step = :step,
			stability = :stability, difficulty = :difficulty, due_date = :due_date,
			last_reviewed_at = :last_reviewed_at, review_count = :review_count
		WHERE id = :id`,
		row); err != nil {
		return fmt.Errorf("db.NamedExecContext(update card) > %w", err)
	}
	return nil
}

func toCards(rows []cardRow) []scheduler.Card {
	cards := make([]scheduler.Card, len(rows))
	for i, row := range rows {
		cards[i] = row.toCard()
	}
	return cards
}

// DBReviewLogRepository implements ReviewLogRepository using MySQL.
type DBReviewLogRepository struct {
	db *sqlx.DB
}

// NewDBReviewLogRepository creates a new DBReviewLogRepository.
func NewDBReviewLogRepository(db *sqlx.DB) *DBReviewLogRepository {
	return &DBReviewLogRepository{db: db}
}

// Create inserts a new review log.
func (r *DBReviewLogRepository) Create(ctx context.Context, log scheduler.ReviewLog) error {
	row := newReviewLogRow(log)
	if _, err := r.db.NamedExecContext(ctx,
		`INSERT INTO review_logs (id, card_id, reviewed_at, rating, elapsed_days, stability, difficulty)
		VALUES (:id, :card_id, :reviewed_at, :rating, :elapsed_days, :stability, :difficulty)`,
		row); err != nil {
		return fmt.Errorf("db.NamedExecContext(insert review_log) > %w", err)
	}
	return nil
}

// FindByCard returns all review logs for a card in chronological order.
func (r *DBReviewLogRepository) FindByCard(ctx context.Context, cardID string) ([]scheduler.ReviewLog, error) {
	var rows []reviewLogRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM review_logs WHERE card_id = ? ORDER BY reviewed_at", cardID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs by card) > %w", err)
	}
	return toReviewLogs(rows), nil
}

// FindAll returns all review logs in chronological order.
func (r *DBReviewLogRepository) FindAll(ctx context.Context) ([]scheduler.ReviewLog, error) {
	var rows []reviewLogRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM review_logs ORDER BY reviewed_at, id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs) > %w", err)
	}
	return toReviewLogs(rows), nil
}

func toReviewLogs(rows []reviewLogRow) []scheduler.ReviewLog {
	logs := make([]scheduler.ReviewLog, len(rows))
	for i, row := range rows {
		logs[i] = row.toReviewLog()
	}
	return logs
}

// DBVocabularyRepository implements VocabularyRepository using MySQL.
type DBVocabularyRepository struct {
	db *sqlx.DB
}

// NewDBVocabularyRepository creates a new DBVocabularyRepository.
func NewDBVocabularyRepository(db *sqlx.DB) *DBVocabularyRepository {
	return &DBVocabularyRepository{db: db}
}

// EnsureWord records a word's first exposure. Already-known words are left
// untouched.
func (r *DBVocabularyRepository) EnsureWord(ctx context.Context, word string, firstSeen time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO vocabulary (word, first_seen) VALUES (?, ?)",
		word, firstSeen); err != nil {
		return fmt.Errorf("db.ExecContext(insert vocabulary) > %w", err)
	}
	return nil
}

// RecordReview bumps the word's review count and last review time.
func (r *DBVocabularyRepository) RecordReview(ctx context.Context, word string, reviewedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE vocabulary SET last_reviewed_at = ?, review_count = review_count + 1 WHERE word = ?",
		reviewedAt, word); err != nil {
		return fmt.Errorf("db.ExecContext(update vocabulary) > %w", err)
	}
	return nil
}

// LearnedWords returns every known word, oldest exposure first.
func (r *DBVocabularyRepository) LearnedWords(ctx context.Context) ([]string, error) {
	var words []string
	if err := r.db.SelectContext(ctx, &words,
		"SELECT word FROM vocabulary ORDER BY first_seen, word"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(vocabulary) > %w", err)
	}
	return words, nil
}
