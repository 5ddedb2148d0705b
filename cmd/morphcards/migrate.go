package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/morphcards/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
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

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}
