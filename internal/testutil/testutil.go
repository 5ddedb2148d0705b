// Package testutil provides shared test helpers for creating config files
// and review history fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

// SetupTestConfig creates a minimal config file and the output directory for
// testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	reportDir := filepath.Join(tmpDir, "reports")
	require.NoError(t, os.MkdirAll(reportDir, 0755))

	configContent := fmt.Sprintf(`database:
  host: localhost
  port: 3306
  database: morphcards_test
  username: user
scheduler:
  desired_retention: 0.9
  maximum_interval_days: 36500
  learning_steps_minutes:
    - 10
  relearning_steps_minutes:
    - 10
optimizer:
  epochs: 2
  mini_batch_size: 16
  min_reviews: 20
outputs:
  report_directory: %s
`,
		reportDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key
// for tests that need the sentence generation client to be constructed.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// SetupTestWeightsFile writes the default weight vector as a weights file and
// returns its path.
func SetupTestWeightsFile(t *testing.T, tmpDir string) string {
	t.Helper()

	path := filepath.Join(tmpDir, "weights.yml")
	require.NoError(t, scheduler.SaveWeightsFile(path, scheduler.DefaultWeights))
	return path
}

// ReviewHistory simulates a plausible study history and returns its review
// logs, for tests that need optimizer input without recording real reviews.
// Cards are introduced one day apart and reviewed whenever they come due.
func ReviewHistory(t *testing.T, numCards, reviewsPerCard int) []scheduler.ReviewLog {
	t.Helper()

	sched, err := scheduler.New(scheduler.Config{})
	require.NoError(t, err)

	start := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	logs := make([]scheduler.ReviewLog, 0, numCards*reviewsPerCard)
	for i := 0; i < numCards; i++ {
		card := scheduler.NewCard(
			fmt.Sprintf("word-%d", i),
			fmt.Sprintf("A sentence with word-%d in it.", i),
			start.AddDate(0, 0, i),
		)
		for j := 0; j < reviewsPerCard; j++ {
			rating := scheduler.RatingGood
			if (i+j)%7 == 0 {
				rating = scheduler.RatingAgain
			}
			updated, log, err := sched.Review(card, rating, card.Due)
			require.NoError(t, err)
			card = updated
			logs = append(logs, log)
		}
	}
	return logs
}
