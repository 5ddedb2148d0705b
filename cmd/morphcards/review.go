package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/morphcards/internal/cli"
	"github.com/at-ishikawa/morphcards/internal/inference"
	"github.com/at-ishikawa/morphcards/internal/inference/openai"
)

func newReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Start an interactive review session for due cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			repos := newRepositories(db)

			sched, err := newScheduler(cfg)
			if err != nil {
				return err
			}

			var inferenceClient inference.Client
			if cfg.OpenAI.APIKey != "" {
				fmt.Printf("Sentence generation enabled (model: %s)\n", cfg.OpenAI.Model)
				openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
				defer func() {
					_ = openaiClient.Close()
				}()
				inferenceClient = openaiClient
			} else {
				fmt.Println("OPENAI_API_KEY is not set, keeping original sentences")
			}

			interactiveCLI := cli.NewInteractiveCLI()
			session := cli.NewReviewSession(
				interactiveCLI,
				sched,
				repos.cards,
				repos.reviewLogs,
				repos.vocabulary,
				inferenceClient,
			)
			return interactiveCLI.Run(cmd.Context(), session)
		},
	}
}
