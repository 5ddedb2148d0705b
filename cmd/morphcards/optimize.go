package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/morphcards/internal/optimizer"
	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

func newOptimizeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Fit scheduler weights to the recorded review history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if output == "" {
				output = cfg.Scheduler.WeightsFile
			}
			if output == "" {
				output = "weights.yml"
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			repos := newRepositories(db)

			logs, err := repos.reviewLogs.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to load review logs: %w", err)
			}

			opt := optimizer.New(optimizer.Config{
				Epochs:        cfg.Optimizer.Epochs,
				MiniBatchSize: cfg.Optimizer.MiniBatchSize,
				LearningRate:  cfg.Optimizer.LearningRate,
				MaxSeqLen:     cfg.Optimizer.MaxSeqLen,
				MinReviews:    cfg.Optimizer.MinReviews,
			}, slog.Default())

			weights, err := opt.Fit(ctx, logs)
			if err != nil {
				if errors.Is(err, optimizer.ErrInsufficientData) {
					fmt.Printf("Not enough cross-day reviews yet (%d needed), keeping the default weights\n",
						cfg.Optimizer.MinReviews)
				} else {
					return fmt.Errorf("failed to fit weights: %w", err)
				}
			}

			if err := scheduler.SaveWeightsFile(output, weights); err != nil {
				return fmt.Errorf("failed to save weights file: %w", err)
			}
			fmt.Printf("Weights written to %s\n", output)
			fmt.Println("Set scheduler.weights_file in the configuration to use them.")
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "weights file path (default: scheduler.weights_file or weights.yml)")
	return cmd
}
