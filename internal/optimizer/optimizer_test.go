package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

// simulateHistory drives a scheduler through a plausible study history:
// each card is reviewed whenever it comes due, succeeding most of the time.
func simulateHistory(t *testing.T, numCards, reviewsPerCard int) []scheduler.ReviewLog {
	t.Helper()

	s, err := scheduler.New(scheduler.Config{})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	var logs []scheduler.ReviewLog
	for i := 0; i < numCards; i++ {
		card := scheduler.NewCard(fmt.Sprintf("word-%03d", i), "sentence", start)
		now := start
		for j := 0; j < reviewsPerCard; j++ {
			rating := scheduler.RatingGood
			switch {
			case rng.Float64() < 0.15:
				rating = scheduler.RatingAgain
			case rng.Float64() < 0.2:
				rating = scheduler.RatingEasy
			}

			var log scheduler.ReviewLog
			card, log, err = s.Review(card, rating, now)
			require.NoError(t, err)
			logs = append(logs, log)
			now = card.Due
		}
	}
	return logs
}

func TestOptimizer_Fit(t *testing.T) {
	cfg := Config{
		Epochs:        2,
		MiniBatchSize: 16,
		MinReviews:    20,
	}

	t.Run("empty history", func(t *testing.T) {
		o := New(cfg, nil)
		_, err := o.Fit(context.Background(), nil)
		assert.ErrorIs(t, err, ErrEmptyLogs)
	})

	t.Run("insufficient history falls back to defaults", func(t *testing.T) {
		o := New(cfg, nil)
		logs := simulateHistory(t, 2, 3)

		weights, err := o.Fit(context.Background(), logs)
		assert.ErrorIs(t, err, ErrInsufficientData)
		assert.Equal(t, scheduler.DefaultWeights, weights)
	})

	t.Run("fits weights within bounds", func(t *testing.T) {
		o := New(cfg, slog.New(slog.DiscardHandler))
		logs := simulateHistory(t, 20, 6)

		weights, err := o.Fit(context.Background(), logs)
		require.NoError(t, err)
		assert.NoError(t, weights.Validate())

		loss := o.Loss(weights, logs)
		assert.Greater(t, loss, 0.0)
	})

	t.Run("is deterministic for the same history", func(t *testing.T) {
		logs := simulateHistory(t, 20, 6)

		first, err := New(cfg, nil).Fit(context.Background(), logs)
		require.NoError(t, err)

		// The loss accumulates floats per card, so any run-dependent
		// iteration order would surface as drifting weights. Repeat the fit
		// enough times that an unstable order could not slip through.
		for i := 0; i < 10; i++ {
			again, err := New(cfg, nil).Fit(context.Background(), logs)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	})

	t.Run("fitted weights do not lose to the defaults", func(t *testing.T) {
		o := New(cfg, nil)
		logs := simulateHistory(t, 25, 6)

		fitted, err := o.Fit(context.Background(), logs)
		require.NoError(t, err)

		fittedLoss := o.Loss(fitted, logs)
		defaultLoss := o.Loss(scheduler.DefaultWeights, logs)
		assert.Greater(t, fittedLoss, 0.0)
		assert.LessOrEqual(t, fittedLoss, defaultLoss)
	})

	t.Run("cancellation returns the best weights so far", func(t *testing.T) {
		o := New(cfg, nil)
		logs := simulateHistory(t, 20, 6)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		weights, err := o.Fit(ctx, logs)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, scheduler.DefaultWeights, weights)
	})

	t.Run("caps each card's history at max sequence length", func(t *testing.T) {
		o := New(Config{
			Epochs:        1,
			MiniBatchSize: 4,
			MinReviews:    4,
			MaxSeqLen:     8,
		}, nil)
		logs := simulateHistory(t, 3, 40)

		weights, err := o.Fit(context.Background(), logs)
		require.NoError(t, err)
		assert.NoError(t, weights.Validate())
	})
}

func TestNew_Defaults(t *testing.T) {
	o := New(Config{}, nil)
	assert.Equal(t, defaultEpochs, o.epochs)
	assert.Equal(t, defaultMiniBatchSize, o.miniBatchSize)
	assert.Equal(t, defaultLearningRate, o.learningRate)
	assert.Equal(t, defaultMaxSeqLen, o.maxSeqLen)
	assert.Equal(t, DefaultMinReviews, o.minReviews)
	assert.NotNil(t, o.logger)
}
