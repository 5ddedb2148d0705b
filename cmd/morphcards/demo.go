package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/morphcards/internal/cli"
)

func newDemoCommand() *cobra.Command {
	var days int
	var seed int64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Simulate several days of study without a database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}

			demo, err := cli.NewDemo(os.Stdout, days, seed)
			if err != nil {
				return err
			}
			return demo.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&days, "days", 14, "Number of days to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for the simulated ratings")

	return cmd
}
