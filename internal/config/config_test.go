package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SUGGEST_THRESHOLD", "0.5")
	t.Setenv("SUMMARY_CACHE_SIZE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Port:             9090,
		LogLevel:         "debug",
		LogFormat:        "text",
		SuggestThreshold: 0.5,
		SummaryCacheSize: 0,
	}, *cfg)
}

func TestLoad_IgnoresUnrelatedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://nowhere")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port out of range", key: "PORT", value: "70000"},
		{name: "port not a number", key: "PORT", value: "http"},
		{name: "unknown log level", key: "LOG_LEVEL", value: "loud"},
		{name: "unknown log format", key: "LOG_FORMAT", value: "xml"},
		{name: "threshold above one", key: "SUGGEST_THRESHOLD", value: "1.5"},
		{name: "negative cache size", key: "SUMMARY_CACHE_SIZE", value: "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_Default(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
}
