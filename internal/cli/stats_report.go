package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/at-ishikawa/morphcards/internal/pdf"
	"github.com/at-ishikawa/morphcards/internal/scheduler"
	"github.com/at-ishikawa/morphcards/internal/statistics"
	"github.com/at-ishikawa/morphcards/internal/storage"
)

// StatsReportOptions controls the report period and output.
type StatsReportOptions struct {
	Year  int // 0 means no filter
	Month int // 0 means no filter, requires Year

	// ReportDirectory, when set, additionally writes a markdown report there.
	ReportDirectory string
	// PDF converts the written markdown report to PDF. Requires ReportDirectory.
	PDF bool

	// Now is the reference time for due counts and the report file name.
	// Zero means time.Now().
	Now time.Time
}

// RunStatsReport displays a review statistics report and optionally writes
// it as markdown and PDF.
func RunStatsReport(
	ctx context.Context,
	stdoutWriter io.Writer,
	cards storage.CardRepository,
	reviewLogs storage.ReviewLogRepository,
	vocabulary storage.VocabularyRepository,
	opts StatsReportOptions,
) error {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	allCards, err := cards.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("cards.FindAll() > %w", err)
	}
	logs, err := reviewLogs.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("reviewLogs.FindAll() > %w", err)
	}
	words, err := vocabulary.LearnedWords(ctx)
	if err != nil {
		return fmt.Errorf("vocabulary.LearnedWords() > %w", err)
	}

	result := statistics.CalculateStatistics(allCards, logs, words, opts.Year, opts.Month, now)

	if len(result.Periods) == 0 {
		fmt.Fprintln(stdoutWriter, "No reviews found for the specified period.")
	} else {
		printStatsReport(stdoutWriter, result)
	}

	if opts.ReportDirectory == "" {
		return nil
	}
	reportPath, err := writeMarkdownReport(opts.ReportDirectory, result, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdoutWriter, "\nReport written to %s\n", reportPath)

	if !opts.PDF {
		return nil
	}
	pdfPath, err := pdf.ConvertMarkdownToPDF(reportPath)
	if err != nil {
		return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
	}
	fmt.Fprintf(stdoutWriter, "PDF written to %s\n", pdfPath)
	return nil
}

func printStatsReport(w io.Writer, result statistics.StatisticsResult) {
	fmt.Fprintln(w, "Review Statistics Report")
	fmt.Fprintln(w, "========================")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-10s  %8s  %6s  %7s  %10s\n", "Period", "Reviews", "Cards", "Lapses", "Retention")
	fmt.Fprintf(w, "%-10s  %8s  %6s  %7s  %10s\n", "------", "-------", "-----", "------", "---------")
	for _, s := range result.Periods {
		fmt.Fprintf(w, "%-10s  %8d  %6d  %7d  %9.0f%%\n",
			s.Period, s.Reviews, s.UniqueCards, s.Lapses, s.Retention*100)
	}

	a := result.Aggregate
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-10s  %8d  %6d  %7d  %9.0f%%\n",
		"Totals:", a.Reviews, a.UniqueCards, a.Lapses, a.Retention*100)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Cards: %d (%d due), learned words: %d\n", a.Cards, a.DueCards, a.LearnedWords)
	for _, state := range []scheduler.State{scheduler.StateNew, scheduler.StateLearning, scheduler.StateReview, scheduler.StateRelearning} {
		if a.CardsByState[state] == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-10s %d\n", state, a.CardsByState[state])
	}
}

func writeMarkdownReport(directory string, result statistics.StatisticsResult, now time.Time) (string, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", directory, err)
	}

	path := filepath.Join(directory, fmt.Sprintf("stats_%s.md", now.Format("2006-01-02")))
	if err := os.WriteFile(path, []byte(renderMarkdownReport(result, now)), 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

func renderMarkdownReport(result statistics.StatisticsResult, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Review Statistics Report\n\n")
	fmt.Fprintf(&b, "Generated on %s.\n\n", now.Format("2006-01-02"))

	b.WriteString("| Period | Reviews | Cards | Lapses | Retention |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: |\n")
	for _, s := range result.Periods {
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %.0f%% |\n",
			s.Period, s.Reviews, s.UniqueCards, s.Lapses, s.Retention*100)
	}
	a := result.Aggregate
	fmt.Fprintf(&b, "| Totals | %d | %d | %d | %.0f%% |\n\n",
		a.Reviews, a.UniqueCards, a.Lapses, a.Retention*100)

	b.WriteString("## Collection\n\n")
	fmt.Fprintf(&b, "- Cards: %d (%d due)\n", a.Cards, a.DueCards)
	for _, state := range []scheduler.State{scheduler.StateNew, scheduler.StateLearning, scheduler.StateReview, scheduler.StateRelearning} {
		if a.CardsByState[state] == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s cards: %d\n", capitalize(string(state)), a.CardsByState[state])
	}
	fmt.Fprintf(&b, "- Learned words: %d\n", a.LearnedWords)
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
