package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigurationMissing))
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/suppliers")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "./storage", cfg.ManifestDir)
	assert.False(t, cfg.AssumeYes)
	assert.True(t, cfg.RequireManifest)
}

func TestLoadAssumeYesOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/suppliers")
	t.Setenv("SUPPLIERCTL_ASSUME_YES", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AssumeYes)
}
