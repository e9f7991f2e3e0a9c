package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.WindowDays)
	assert.Equal(t, 15, cfg.Limit)
	assert.Equal(t, "reports", cfg.OutputDir)
	assert.Equal(t, []string{"markdown", "html"}, cfg.Formats)
	assert.Equal(t, 5.0, cfg.Weights.PRMerged)
	assert.Equal(t, 0.5, cfg.Weights.Commit)
	assert.False(t, cfg.IncludeZero)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TEAMPULSE_ORGANIZATION", "contoso")
	t.Setenv("TEAMPULSE_TOKEN", "pat-token")
	t.Setenv("TEAMPULSE_LIMIT", "5")
	t.Setenv("TEAMPULSE_WEIGHTS_COMMIT", "1.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "contoso", cfg.Organization)
	assert.Equal(t, "pat-token", cfg.Token)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, 1.5, cfg.Weights.Commit)
	// untouched defaults survive
	assert.Equal(t, 5.0, cfg.Weights.PRMerged)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teampulse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
organization: fabrikam
project: website
window_days: 14
weights:
  pr_merged: 10
`), 0644))
	t.Setenv("TEAMPULSE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fabrikam", cfg.Organization)
	assert.Equal(t, "website", cfg.Project)
	assert.Equal(t, 14, cfg.WindowDays)
	assert.Equal(t, 10.0, cfg.Weights.PRMerged)
	assert.Equal(t, 4.0, cfg.Weights.CodeReview)
}

func TestLoadRejectsNegativeWeight(t *testing.T) {
	t.Setenv("TEAMPULSE_WEIGHTS_PR_MERGED", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pr_merged")
}

func TestValidateCollection(t *testing.T) {
	cfg := New()
	assert.Error(t, cfg.ValidateCollection())

	cfg.Organization = "contoso"
	assert.Error(t, cfg.ValidateCollection())

	cfg.Project = "website"
	assert.Error(t, cfg.ValidateCollection())

	cfg.Token = "pat"
	assert.NoError(t, cfg.ValidateCollection())
}
