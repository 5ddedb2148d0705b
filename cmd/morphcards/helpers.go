package main

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/morphcards/internal/config"
	"github.com/at-ishikawa/morphcards/internal/database"
	"github.com/at-ishikawa/morphcards/internal/scheduler"
	"github.com/at-ishikawa/morphcards/internal/storage"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

type repositories struct {
	cards      storage.CardRepository
	reviewLogs storage.ReviewLogRepository
	vocabulary storage.VocabularyRepository
}

func newRepositories(db *sqlx.DB) repositories {
	return repositories{
		cards:      storage.NewDBCardRepository(db),
		reviewLogs: storage.NewDBReviewLogRepository(db),
		vocabulary: storage.NewDBVocabularyRepository(db),
	}
}

// newScheduler builds a scheduler from the configuration, loading a fitted
// weight vector when one is configured.
func newScheduler(cfg *config.Config) (*scheduler.Scheduler, error) {
	weights := scheduler.DefaultWeights
	if cfg.Scheduler.WeightsFile != "" {
		loaded, err := scheduler.LoadWeightsFile(cfg.Scheduler.WeightsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load weights file: %w", err)
		}
		weights = loaded
	}

	sched, err := scheduler.New(scheduler.Config{
		Weights:          weights,
		DesiredRetention: cfg.Scheduler.DesiredRetention,
		LearningSteps:    minutesToSteps(cfg.Scheduler.LearningStepsMinutes),
		RelearningSteps:  minutesToSteps(cfg.Scheduler.RelearningStepsMinutes),
		MaximumInterval:  cfg.Scheduler.MaximumIntervalDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return sched, nil
}

// minutesToSteps keeps the nil/empty distinction: nil means the scheduler's
// default steps, an empty list means no steps at all.
func minutesToSteps(minutes []int) []time.Duration {
	if minutes == nil {
		return nil
	}
	steps := make([]time.Duration, 0, len(minutes))
	for _, m := range minutes {
		steps = append(steps, time.Duration(m)*time.Minute)
	}
	return steps
}

func openDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
