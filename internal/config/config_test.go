package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		wantErr       string
		assertConfig  func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid config file with custom values",
			configContent: `database:
  host: db.internal
  port: 3307
  database: cards
  username: learner
scheduler:
  desired_retention: 0.85
  learning_steps_minutes: [1, 10]
optimizer:
  epochs: 3
outputs:
  report_directory: custom/reports
`,
			assertConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "db.internal", cfg.Database.Host)
				assert.Equal(t, 3307, cfg.Database.Port)
				assert.Equal(t, "cards", cfg.Database.Database)
				assert.Equal(t, "learner", cfg.Database.Username)
				assert.Equal(t, 0.85, cfg.Scheduler.DesiredRetention)
				assert.Equal(t, []int{1, 10}, cfg.Scheduler.LearningStepsMinutes)
				assert.Equal(t, 3, cfg.Optimizer.Epochs)
				assert.Equal(t, "custom/reports", cfg.Outputs.ReportDirectory)
			},
		},
		{
			name:          "defaults fill unspecified values",
			configContent: "database:\n  host: localhost\n",
			assertConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3306, cfg.Database.Port)
				assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
				assert.Equal(t, 0.9, cfg.Scheduler.DesiredRetention)
				assert.Equal(t, 36500, cfg.Scheduler.MaximumIntervalDays)
				assert.Equal(t, []int{10}, cfg.Scheduler.LearningStepsMinutes)
				assert.Equal(t, []int{10}, cfg.Scheduler.RelearningStepsMinutes)
				assert.Equal(t, 5, cfg.Optimizer.Epochs)
				assert.Equal(t, 512, cfg.Optimizer.MiniBatchSize)
				assert.Equal(t, 0.04, cfg.Optimizer.LearningRate)
				assert.Equal(t, 50, cfg.Optimizer.MinReviews)
				assert.Equal(t, filepath.Join("outputs", "reports"), cfg.Outputs.ReportDirectory)
			},
		},
		{
			name:          "invalid YAML format",
			configContent: "database: [unclosed\n",
			wantErr:       "could not be read",
		},
		{
			name: "retention out of range",
			configContent: `scheduler:
  desired_retention: 1.5
`,
			wantErr: "invalid configuration",
		},
		{
			name: "weights file must exist",
			configContent: `scheduler:
  weights_file: /nonexistent/weights.yml
`,
			wantErr: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.configContent), 0644))

			loader, err := NewConfigLoader(configFile)
			require.NoError(t, err)

			cfg, err := loader.Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.assertConfig(t, cfg)
		})
	}
}

func TestConfigLoader_Load_EnvironmentBindings(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DB_PASSWORD", "secret")

	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("database:\n  host: localhost\n"), 0644))

	loader, err := NewConfigLoader(configFile)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "secret", cfg.Database.Password)
}

func TestConfigLoader_Load_WeightsFile(t *testing.T) {
	dir := t.TempDir()
	weightsFile := filepath.Join(dir, "weights.yml")
	require.NoError(t, os.WriteFile(weightsFile, []byte("weights: []\n"), 0644))

	configFile := filepath.Join(dir, "config.yml")
	content := "scheduler:\n  weights_file: " + weightsFile + "\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	loader, err := NewConfigLoader(configFile)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, weightsFile, cfg.Scheduler.WeightsFile)
}
