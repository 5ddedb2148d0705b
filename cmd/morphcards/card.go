package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

func newCardCommand() *cobra.Command {
	cardCommand := &cobra.Command{
		Use:   "card",
		Short: "Manage vocabulary cards",
	}

	cardCommand.AddCommand(newCardAddCommand())
	cardCommand.AddCommand(newCardListCommand())
	cardCommand.AddCommand(newCardDueCommand())

	return cardCommand
}

func newCardAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <word> <sentence>",
		Short: "Add a new card with its example sentence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
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

			card := scheduler.NewCard(args[0], args[1], time.Now())
			if err := repos.cards.Create(ctx, card); err != nil {
				return fmt.Errorf("failed to create a card: %w", err)
			}
			if err := repos.vocabulary.EnsureWord(ctx, card.Word, card.CreatedAt); err != nil {
				return fmt.Errorf("failed to record the word: %w", err)
			}

			fmt.Printf("Added card %s for %q\n", card.ID, card.Word)
			return nil
		},
	}
}

func newCardListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
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

			cards, err := repos.cards.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to list cards: %w", err)
			}
			printCards(cards)
			return nil
		},
	}
}

func newCardDueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List cards that are due for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
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

			cards, err := repos.cards.FindDue(ctx, time.Now())
			if err != nil {
				return fmt.Errorf("failed to list due cards: %w", err)
			}
			printCards(cards)
			return nil
		},
	}
}

func printCards(cards []scheduler.Card) {
	if len(cards) == 0 {
		fmt.Println("No cards found.")
		return
	}

	fmt.Printf("%-20s  %-10s  %-16s  %7s\n", "Word", "State", "Due", "Reviews")
	for _, card := range cards {
		fmt.Printf("%-20s  %-10s  %-16s  %7d\n",
			card.Word, card.State, card.Due.Format("2006-01-02 15:04"), card.ReviewCount)
	}
}
