package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadEnv_Defaults(t *testing.T) {
	unsetenv(t, "VAXNET_SEED")
	unsetenv(t, "VAXNET_LOG")
	unsetenv(t, "VAXNET_RESULTS_DB")

	e, err := loadEnv()

	require.NoError(t, err)
	assert.Equal(t, int64(42), e.Seed)
	assert.Equal(t, "error", e.LogLevel)
	assert.Empty(t, e.ResultsDB)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("VAXNET_SEED", "7")
	t.Setenv("VAXNET_LOG", "debug")
	t.Setenv("VAXNET_RESULTS_DB", "/tmp/runs.db")

	e, err := loadEnv()

	require.NoError(t, err)
	assert.Equal(t, int64(7), e.Seed)
	assert.Equal(t, "debug", e.LogLevel)
	assert.Equal(t, "/tmp/runs.db", e.ResultsDB)
}

func TestLoadEnv_MalformedSeed_ReturnsError(t *testing.T) {
	t.Setenv("VAXNET_SEED", "forty-two")
	_, err := loadEnv()
	assert.Error(t, err)
}
