package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/morphcards/internal/scheduler"
	"github.com/at-ishikawa/morphcards/internal/testutil"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "morphcards_test", cfg.Database.Database)
	assert.Equal(t, 0.9, cfg.Scheduler.DesiredRetention)
	assert.Equal(t, 2, cfg.Optimizer.Epochs)
}

func TestLoadConfig_BrokenConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	_, err := loadConfig()
	assert.Error(t, err)
}

func TestNewScheduler(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
	cfg, err := loadConfig()
	require.NoError(t, err)

	sched, err := newScheduler(cfg)
	require.NoError(t, err)
	assert.Equal(t, scheduler.DefaultWeights, sched.Weights())
	assert.Equal(t, 0.9, sched.DesiredRetention())
}

func TestNewScheduler_WithWeightsFile(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
	cfg, err := loadConfig()
	require.NoError(t, err)
	cfg.Scheduler.WeightsFile = testutil.SetupTestWeightsFile(t, tmpDir)

	sched, err := newScheduler(cfg)
	require.NoError(t, err)
	assert.Equal(t, scheduler.DefaultWeights, sched.Weights())
}

func TestNewScheduler_MissingWeightsFile(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
	cfg, err := loadConfig()
	require.NoError(t, err)
	cfg.Scheduler.WeightsFile = "/nonexistent/weights.yml"

	_, err = newScheduler(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "weights file")
}

func TestMinutesToSteps(t *testing.T) {
	tests := []struct {
		name    string
		minutes []int
		want    []time.Duration
	}{
		{
			name:    "nil keeps the scheduler defaults",
			minutes: nil,
			want:    nil,
		},
		{
			name:    "empty means no steps",
			minutes: []int{},
			want:    []time.Duration{},
		},
		{
			name:    "minutes",
			minutes: []int{1, 10},
			want:    []time.Duration{time.Minute, 10 * time.Minute},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, minutesToSteps(tt.minutes))
		})
	}
}
