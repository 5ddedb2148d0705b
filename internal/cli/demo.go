package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
	"github.com/at-ishikawa/morphcards/internal/storage"
)

// demoDeck is the built-in deck the demo studies. Sentences are fixed since
// the demo never calls the generation API.
var demoDeck = []struct {
	word     string
	sentence string
}{
	{word: "ephemeral", sentence: "The beauty of cherry blossoms is ephemeral."},
	{word: "ubiquitous", sentence: "Smartphones have become ubiquitous in daily life."},
	{word: "serendipity", sentence: "Finding that book was pure serendipity."},
	{word: "resilient", sentence: "Children are often more resilient than adults expect."},
	{word: "meticulous", sentence: "She kept meticulous notes during the experiment."},
	{word: "ambiguous", sentence: "His answer was too ambiguous to act on."},
	{word: "pragmatic", sentence: "A pragmatic plan beats a perfect one that never ships."},
	{word: "eloquent", sentence: "The speech was brief but eloquent."},
	{word: "tenacious", sentence: "The tenacious climber refused to turn back."},
	{word: "candid", sentence: "I appreciated her candid feedback."},
	{word: "frugal", sentence: "They lived a frugal life and saved for travel."},
	{word: "lucid", sentence: "The professor gave a lucid explanation of the proof."},
	{word: "obsolete", sentence: "The fax machine is all but obsolete."},
	{word: "profound", sentence: "The book had a profound effect on me."},
	{word: "subtle", sentence: "There is a subtle difference between the two words."},
}

// demoMaxReviewsPerDay bounds a simulated day so a run of failed reviews
// cannot loop forever on the same learning steps.
const demoMaxReviewsPerDay = 100

// Demo simulates several days of study against in-memory repositories and
// prints a per-day summary. It exercises the same scheduler and storage
// paths as a real review session, just without a terminal or a database.
type Demo struct {
	stdoutWriter io.Writer
	scheduler    *scheduler.Scheduler
	cards        storage.CardRepository
	reviewLogs   storage.ReviewLogRepository
	vocabulary   storage.VocabularyRepository
	days         int
	newPerDay    int
	rng          *rand.Rand
}

func NewDemo(stdoutWriter io.Writer, days int, seed int64) (*Demo, error) {
	sched, err := scheduler.New(scheduler.Config{})
	if err != nil {
		return nil, fmt.Errorf("scheduler.New() > %w", err)
	}
	return &Demo{
		stdoutWriter: stdoutWriter,
		scheduler:    sched,
		cards:        storage.NewMemoryCardRepository(),
		reviewLogs:   storage.NewMemoryReviewLogRepository(),
		vocabulary:   storage.NewMemoryVocabularyRepository(),
		days:         days,
		newPerDay:    3,
		rng:          rand.New(rand.NewSource(seed)),
	}, nil
}

// Run simulates the configured number of study days.
func (demo *Demo) Run(ctx context.Context) error {
	start := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	nextWord := 0

	for day := 0; day < demo.days; day++ {
		dayStart := start.AddDate(0, 0, day)

		added := 0
		for ; added < demo.newPerDay && nextWord < len(demoDeck); added++ {
			entry := demoDeck[nextWord]
			nextWord++
			card := scheduler.NewCard(entry.word, entry.sentence, dayStart)
			if err := demo.cards.Create(ctx, card); err != nil {
				return fmt.Errorf("cards.Create() > %w", err)
			}
			if err := demo.vocabulary.EnsureWord(ctx, entry.word, dayStart); err != nil {
				return fmt.Errorf("vocabulary.EnsureWord() > %w", err)
			}
		}

		reviewed, lapses, err := demo.studyDay(ctx, dayStart)
		if err != nil {
			return err
		}
		fmt.Fprintf(demo.stdoutWriter, "day %2d: %d new, %2d reviewed, %d forgotten\n",
			day+1, added, reviewed, lapses)
	}

	return demo.printSummary(ctx, start.AddDate(0, 0, demo.days))
}

// studyDay reviews everything that comes due before the day's study session
// ends, including the re-reviews the learning steps schedule a few minutes
// out.
func (demo *Demo) studyDay(ctx context.Context, dayStart time.Time) (int, int, error) {
	dayEnd := dayStart.Add(12 * time.Hour)
	reviewed := 0
	lapses := 0

	for reviewed < demoMaxReviewsPerDay {
		due, err := demo.cards.FindDue(ctx, dayEnd)
		if err != nil {
			return reviewed, lapses, fmt.Errorf("cards.FindDue() > %w", err)
		}
		if len(due) == 0 {
			break
		}

		for _, card := range due {
			reviewedAt := card.Due
			if reviewedAt.Before(dayStart) {
				reviewedAt = dayStart
			}
			rating := demo.sampleRating()
			updated, log, err := demo.scheduler.Review(card, rating, reviewedAt)
			if err != nil {
				return reviewed, lapses, fmt.Errorf("scheduler.Review() > %w", err)
			}
			if err := demo.cards.Update(ctx, updated); err != nil {
				return reviewed, lapses, fmt.Errorf("cards.Update() > %w", err)
			}
			if err := demo.reviewLogs.Create(ctx, log); err != nil {
				return reviewed, lapses, fmt.Errorf("reviewLogs.Create() > %w", err)
			}
			if err := demo.vocabulary.RecordReview(ctx, card.Word, log.ReviewedAt); err != nil {
				return reviewed, lapses, fmt.Errorf("vocabulary.RecordReview() > %w", err)
			}
			reviewed++
			if !rating.Succeeded() {
				lapses++
			}
			if reviewed >= demoMaxReviewsPerDay {
				break
			}
		}
	}
	return reviewed, lapses, nil
}

// sampleRating draws a rating from a distribution roughly matching a real
// learner: mostly good, occasionally hard or easy, sometimes forgotten.
func (demo *Demo) sampleRating() scheduler.Rating {
	p := demo.rng.Float64()
	switch {
	case p < 0.10:
		return scheduler.RatingAgain
	case p < 0.30:
		return scheduler.RatingHard
	case p < 0.85:
		return scheduler.RatingGood
	default:
		return scheduler.RatingEasy
	}
}

func (demo *Demo) printSummary(ctx context.Context, now time.Time) error {
	cards, err := demo.cards.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("cards.FindAll() > %w", err)
	}
	logs, err := demo.reviewLogs.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("reviewLogs.FindAll() > %w", err)
	}

	states := map[scheduler.State]int{}
	for _, card := range cards {
		states[card.State]++
	}
	fmt.Fprintf(demo.stdoutWriter, "\n%d cards, %d reviews over %d days\n", len(cards), len(logs), demo.days)
	for _, state := range []scheduler.State{scheduler.StateNew, scheduler.StateLearning, scheduler.StateReview, scheduler.StateRelearning} {
		if states[state] == 0 {
			continue
		}
		fmt.Fprintf(demo.stdoutWriter, "  %-10s %d\n", state, states[state])
	}

	retention := 0.0
	for _, card := range cards {
		retention += demo.scheduler.Retrievability(card, now)
	}
	if len(cards) > 0 {
		fmt.Fprintf(demo.stdoutWriter, "average recall chance: %.0f%%\n", retention/float64(len(cards))*100)
	}
	return nil
}
