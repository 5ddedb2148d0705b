package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	GenerateSentence(ctx context.Context, params GenerateSentenceRequest) (GenerateSentenceResponse, error)
}

// GenerateSentenceRequest asks for a fresh example sentence for a word under
// study, composed only from vocabulary the learner has already seen.
type GenerateSentenceRequest struct {
	Word              string   `json:"word"`
	LearnedVocabulary []string `json:"learned_vocabulary"`
	Language          string   `json:"language,omitempty"` // defaults to English
}

type GenerateSentenceResponse struct {
	Sentence string `json:"sentence"`
}

const (
	DefaultMaxRetryAttempts = 3

	// MinVocabularyForGeneration is the smallest learned vocabulary worth
	// generating from. Below it the generated sentences degenerate into the
	// word itself, so callers keep the card's original sentence instead.
	MinVocabularyForGeneration = 5
)
