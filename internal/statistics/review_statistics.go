package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

// ReviewStatistics holds review statistics for a time period
type ReviewStatistics struct {
	Period      string  // "2025-01" for monthly
	Reviews     int     // Total reviews in the period
	UniqueCards int     // Unique cards reviewed in the period
	Lapses      int     // Reviews rated again
	Retention   float64 // Share of reviews that succeeded, 0 to 1
}

// AggregateStatistics holds totals across all periods with global unique counts
type AggregateStatistics struct {
	Reviews      int
	UniqueCards  int // Unique cards reviewed (deduplicated across periods)
	Lapses       int
	Retention    float64
	Cards        int // All cards, reviewed or not
	CardsByState map[scheduler.State]int
	DueCards     int // Cards due at the time of calculation
	LearnedWords int
}

// StatisticsResult holds both per-period and aggregate statistics
type StatisticsResult struct {
	Periods   []ReviewStatistics
	Aggregate AggregateStatistics
}

// periodData tracks counts per period
type periodData struct {
	reviews     int
	lapses      int
	uniqueCards map[string]struct{}
}

// CalculateStatistics calculates review statistics from cards, review logs
// and the learned vocabulary. It accepts optional year and month filters
// (0 means no filter); the filters restrict the per-period breakdown and the
// review totals, while the card and vocabulary counts always cover
// everything.
func CalculateStatistics(
	cards []scheduler.Card,
	logs []scheduler.ReviewLog,
	learnedWords []string,
	year, month int,
	now time.Time,
) StatisticsResult {
	stats := make(map[string]*periodData)
	globalUniqueCards := make(map[string]struct{})
	totalReviews := 0
	totalLapses := 0

	for _, log := range logs {
		logYear := log.ReviewedAt.Year()
		logMonth := int(log.ReviewedAt.Month())
		if !matchesFilter(logYear, logMonth, year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", logYear, logMonth)
		ensurePeriodExists(stats, period)

		stats[period].reviews++
		stats[period].uniqueCards[log.CardID] = struct{}{}
		globalUniqueCards[log.CardID] = struct{}{}
		totalReviews++
		if !log.Rating.Succeeded() {
			stats[period].lapses++
			totalLapses++
		}
	}

	cardsByState := make(map[scheduler.State]int)
	dueCards := 0
	for _, card := range cards {
		cardsByState[card.State]++
		if !card.Due.After(now) {
			dueCards++
		}
	}

	return StatisticsResult{
		Periods: buildPeriods(stats),
		Aggregate: AggregateStatistics{
			Reviews:      totalReviews,
			UniqueCards:  len(globalUniqueCards),
			Lapses:       totalLapses,
			Retention:    retention(totalReviews, totalLapses),
			Cards:        len(cards),
			CardsByState: cardsByState,
			DueCards:     dueCards,
			LearnedWords: len(learnedWords),
		},
	}
}

func ensurePeriodExists(stats map[string]*periodData, period string) {
	if stats[period] == nil {
		stats[period] = &periodData{
			uniqueCards: make(map[string]struct{}),
		}
	}
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

func retention(reviews, lapses int) float64 {
	if reviews == 0 {
		return 0
	}
	return float64(reviews-lapses) / float64(reviews)
}

func buildPeriods(stats map[string]*periodData) []ReviewStatistics {
	periods := make([]ReviewStatistics, 0, len(stats))
	for period, data := range stats {
		periods = append(periods, ReviewStatistics{
			Period:      period,
			Reviews:     data.reviews,
			UniqueCards: len(data.uniqueCards),
			Lapses:      data.lapses,
			Retention:   retention(data.reviews, data.lapses),
		})
	}

	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})
	return periods
}
