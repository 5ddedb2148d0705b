package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

// MemoryCardRepository implements CardRepository in memory, for the demo
// simulation and tests.
type MemoryCardRepository struct {
	mu    sync.RWMutex
	cards map[string]scheduler.Card
	order []string
}

// NewMemoryCardRepository creates an empty MemoryCardRepository.
func NewMemoryCardRepository() *MemoryCardRepository {
	return &MemoryCardRepository{cards: map[string]scheduler.Card{}}
}

func (r *MemoryCardRepository) Create(_ context.Context, card scheduler.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cards[card.ID]; !ok {
		r.order = append(r.order, card.ID)
	}
	r.cards[card.ID] = card
	return nil
}

func (r *MemoryCardRepository) FindByID(_ context.Context, id string) (*scheduler.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	card, ok := r.cards[id]
	if !ok {
		return nil, nil
	}
	return &card, nil
}

func (r *MemoryCardRepository) FindAll(_ context.Context) ([]scheduler.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cards := make([]scheduler.Card, 0, len(r.order))
	for _, id := range r.order {
		cards = append(cards, r.cards[id])
	}
	return cards, nil
}

func (r *MemoryCardRepository) FindDue(_ context.Context, now time.Time) ([]scheduler.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []scheduler.Card
	for _, id := range r.order {
		card := r.cards[id]
		if !card.Due.After(now) {
			due = append(due, card)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].Due.Before(due[j].Due) })
	return due, nil
}

func (r *MemoryCardRepository) Update(_ context.Context, card scheduler.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cards[card.ID]; !ok {
		r.order = append(r.order, card.ID)
	}
	r.cards[card.ID] = card
	return nil
}

// MemoryReviewLogRepository implements ReviewLogRepository in memory.
type MemoryReviewLogRepository struct {
	mu   sync.RWMutex
	logs []scheduler.ReviewLog
}

// NewMemoryReviewLogRepository creates an empty MemoryReviewLogRepository.
func NewMemoryReviewLogRepository() *MemoryReviewLogRepository {
	return &MemoryReviewLogRepository{}
}

func (r *MemoryReviewLogRepository) Create(_ context.Context, log scheduler.ReviewLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *MemoryReviewLogRepository) FindByCard(_ context.Context, cardID string) ([]scheduler.ReviewLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var logs []scheduler.ReviewLog
	for _, log := range r.logs {
		if log.CardID == cardID {
			logs = append(logs, log)
		}
	}
	sortLogs(logs)
	return logs, nil
}

func (r *MemoryReviewLogRepository) FindAll(_ context.Context) ([]scheduler.ReviewLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	logs := make([]scheduler.ReviewLog, len(r.logs))
	copy(logs, r.logs)
	sortLogs(logs)
	return logs, nil
}

func sortLogs(logs []scheduler.ReviewLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].ReviewedAt.Before(logs[j].ReviewedAt)
	})
}

type vocabularyEntry struct {
	firstSeen      time.Time
	lastReviewedAt *time.Time
	reviewCount    int
}

// MemoryVocabularyRepository implements VocabularyRepository in memory.
type MemoryVocabularyRepository struct {
	mu    sync.RWMutex
	words map[string]vocabularyEntry
}

// NewMemoryVocabularyRepository creates an empty MemoryVocabularyRepository.
func NewMemoryVocabularyRepository() *MemoryVocabularyRepository {
	return &MemoryVocabularyRepository{words: map[string]vocabularyEntry{}}
}

func (r *MemoryVocabularyRepository) EnsureWord(_ context.Context, word string, firstSeen time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.words[word]; !ok {
		r.words[word] = vocabularyEntry{firstSeen: firstSeen}
	}
	return nil
}

func (r *MemoryVocabularyRepository) RecordReview(_ context.Context, word string, reviewedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.words[word]
	if !ok {
		return nil
	}
	entry.lastReviewedAt = &reviewedAt
	entry.reviewCount++
	r.words[word] = entry
	return nil
}

func (r *MemoryVocabularyRepository) LearnedWords(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	words := make([]string, 0, len(r.words))
	for word := range r.words {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		a, b := r.words[words[i]], r.words[words[j]]
		if !a.firstSeen.Equal(b.firstSeen) {
			return a.firstSeen.Before(b.firstSeen)
		}
		return words[i] < words[j]
	})
	return words, nil
}
