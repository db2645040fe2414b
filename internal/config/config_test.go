package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dayflow", cfg.AppName)
	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
	assert.Equal(t, "./data/dayflow.db", cfg.Storage.Path)
	assert.True(t, cfg.Tracker.Enabled)
	assert.Equal(t, time.Minute, cfg.Tracker.Interval)
	assert.Equal(t, "claude", cfg.Advisor.Command)
	assert.Equal(t, []string{"--print"}, cfg.Advisor.Args)
	assert.Equal(t, 15*time.Second, cfg.Context.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATA_PATH", "/tmp/day.db")
	t.Setenv("TRACKER_ENABLED", "false")
	t.Setenv("TRACKER_INTERVAL", "30s")
	t.Setenv("ADVISOR_COMMAND", "copilot")
	t.Setenv("ADVISOR_ARGS", "suggest -t shell")
	t.Setenv("LOG_ENCODING", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
	assert.Equal(t, "/tmp/day.db", cfg.Storage.Path)
	assert.False(t, cfg.Tracker.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Tracker.Interval)
	assert.Equal(t, "copilot", cfg.Advisor.Command)
	assert.Equal(t, []string{"suggest", "-t", "shell"}, cfg.Advisor.Args)
	assert.Equal(t, "console", cfg.Logger.Encoding)
}

func TestLoad_DurationAcceptsBareSeconds(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Context.RequestTimeout)
}
