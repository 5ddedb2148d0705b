package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/morphcards/internal/inference"
	"github.com/at-ishikawa/morphcards/internal/scheduler"
	"github.com/at-ishikawa/morphcards/internal/storage"
)

// ReviewSession walks the learner through every card that is due, one card
// per Session call. After a successful review the card's example sentence is
// regenerated from the learned vocabulary, so the sentence keeps pace with
// what the learner can actually read.
type ReviewSession struct {
	cli             *InteractiveCLI
	scheduler       *scheduler.Scheduler
	cards           storage.CardRepository
	reviewLogs      storage.ReviewLogRepository
	vocabulary      storage.VocabularyRepository
	inferenceClient inference.Client
	now             func() time.Time

	loaded   bool
	queue    []scheduler.Card
	reviewed int
	lapses   int
}

// NewReviewSession creates a review session. inferenceClient may be nil, in
// which case sentences are never regenerated.
func NewReviewSession(
	cli *InteractiveCLI,
	sched *scheduler.Scheduler,
	cards storage.CardRepository,
	reviewLogs storage.ReviewLogRepository,
	vocabulary storage.VocabularyRepository,
	inferenceClient inference.Client,
) *ReviewSession {
	return &ReviewSession{
		cli:             cli,
		scheduler:       sched,
		cards:           cards,
		reviewLogs:      reviewLogs,
		vocabulary:      vocabulary,
		inferenceClient: inferenceClient,
		now:             time.Now,
	}
}

// Session reviews a single card. It implements the Session interface.
func (session *ReviewSession) Session(ctx context.Context) error {
	if !session.loaded {
		queue, err := session.cards.FindDue(ctx, session.now())
		if err != nil {
			return fmt.Errorf("cards.FindDue() > %w", err)
		}
		session.loaded = true
		session.queue = queue
		if len(queue) == 0 {
			fmt.Fprintln(session.cli.stdoutWriter, "No cards are due. Come back later.")
			return errEnd
		}
		fmt.Fprintf(session.cli.stdoutWriter, "%d cards due.\n", len(queue))
	}
	if len(session.queue) == 0 {
		fmt.Fprintf(session.cli.stdoutWriter, "\nReviewed %d cards (%d forgotten).\n", session.reviewed, session.lapses)
		return errEnd
	}

	card := session.queue[0]
	now := session.now()

	session.cli.bold.Fprintf(session.cli.stdoutWriter, "\n%s\n", card.Word)
	session.cli.italic.Fprintf(session.cli.stdoutWriter, "%s\n", card.Sentence)
	if card.Memory != nil {
		fmt.Fprintf(session.cli.stdoutWriter, "Recall chance: %.0f%%\n",
			session.scheduler.Retrievability(card, now)*100)
	}

	preview, err := session.scheduler.Preview(card, now)
	if err != nil {
		return fmt.Errorf("scheduler.Preview() > %w", err)
	}
	fmt.Fprintf(session.cli.stdoutWriter, "(1) again [%s]  (2) hard [%s]  (3) good [%s]  (4) easy [%s]  (q) quit\n> ",
		formatInterval(preview[scheduler.RatingAgain].Due.Sub(now)),
		formatInterval(preview[scheduler.RatingHard].Due.Sub(now)),
		formatInterval(preview[scheduler.RatingGood].Due.Sub(now)),
		formatInterval(preview[scheduler.RatingEasy].Due.Sub(now)),
	)

	line, err := session.cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("stdinReader.ReadString() > %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == "q" {
		fmt.Fprintf(session.cli.stdoutWriter, "\nReviewed %d cards (%d forgotten).\n", session.reviewed, session.lapses)
		return errEnd
	}
	value, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintln(session.cli.stdoutWriter, "Please answer 1-4, or q to quit.")
		return nil
	}
	rating, err := scheduler.ParseRating(value)
	if err != nil {
		fmt.Fprintln(session.cli.stdoutWriter, "Please answer 1-4, or q to quit.")
		return nil
	}

	reviewed, log, err := session.scheduler.Review(card, rating, now)
	if err != nil {
		return fmt.Errorf("scheduler.Review() > %w", err)
	}

	if rating.Succeeded() {
		session.regenerateSentence(ctx, &reviewed)
	}

	if err := session.cards.Update(ctx, reviewed); err != nil {
		return fmt.Errorf("cards.Update() > %w", err)
	}
	if err := session.reviewLogs.Create(ctx, log); err != nil {
		return fmt.Errorf("reviewLogs.Create() > %w", err)
	}
	if err := session.vocabulary.RecordReview(ctx, card.Word, log.ReviewedAt); err != nil {
		return fmt.Errorf("vocabulary.RecordReview() > %w", err)
	}

	if rating.Succeeded() {
		color.New(color.FgGreen).Fprintf(session.cli.stdoutWriter, "✅ Next review in %s\n",
			formatInterval(reviewed.Due.Sub(now)))
	} else {
		session.lapses++
		color.New(color.FgRed).Fprintf(session.cli.stdoutWriter, "❌ Again in %s\n",
			formatInterval(reviewed.Due.Sub(now)))
	}
	session.reviewed++
	session.queue = session.queue[1:]
	return nil
}

// regenerateSentence replaces the card's sentence with a freshly generated
// one. Failures keep the current sentence, a review session must not abort
// because the generation API is down.
func (session *ReviewSession) regenerateSentence(ctx context.Context, card *scheduler.Card) {
	if session.inferenceClient == nil {
		return
	}
	words, err := session.vocabulary.LearnedWords(ctx)
	if err != nil {
		slog.Default().Warn("failed to load learned vocabulary, keeping the current sentence",
			"word", card.Word,
			"error", err,
		)
		return
	}
	if len(words) < inference.MinVocabularyForGeneration {
		return
	}

	response, err := session.inferenceClient.GenerateSentence(ctx, inference.GenerateSentenceRequest{
		Word:              card.Word,
		LearnedVocabulary: words,
	})
	if err != nil {
		slog.Default().Warn("failed to generate a sentence, keeping the current sentence",
			"word", card.Word,
			"error", err,
		)
		return
	}
	card.Sentence = response.Sentence
}
