package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "desired_retention")
	assert.Contains(t, string(content), "report_directory")

	info, err := os.Stat(filepath.Join(tmpDir, "reports"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSetupTestConfigWithAPIKey(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfigWithAPIKey(t, tmpDir)

	content, err := os.ReadFile(got)
	require.NoError(t, err)

	contentStr := string(content)
	assert.Contains(t, contentStr, "openai:")
	assert.Contains(t, contentStr, "api_key: fake-key-for-testing")
	assert.Contains(t, contentStr, "model: gpt-4o-mini")
	// The base config fields should also be present.
	assert.Contains(t, contentStr, "desired_retention")
}

func TestSetupTestWeightsFile(t *testing.T) {
	path := SetupTestWeightsFile(t, t.TempDir())

	weights, err := scheduler.LoadWeightsFile(path)
	require.NoError(t, err)
	assert.Equal(t, scheduler.DefaultWeights, weights)
}

func TestReviewHistory(t *testing.T) {
	logs := ReviewHistory(t, 3, 4)

	require.Len(t, logs, 12)
	cardIDs := map[string]struct{}{}
	for _, log := range logs {
		cardIDs[log.CardID] = struct{}{}
		assert.True(t, log.Rating.IsValid())
		assert.False(t, log.ReviewedAt.IsZero())
	}
	assert.Len(t, cardIDs, 3)
}
