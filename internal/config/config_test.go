package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// writeTempConfig writes a config.yaml into a fresh directory and returns
// the directory for CONFIG_PATH.
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadReadsConfigFile(t *testing.T) {
	viper.Reset()
	dir := writeTempConfig(t, `
server:
  port: "8080"
raffle:
  stakeamount: 25.0
  drawinterval: 1h
vrf:
  mock: false
  baseurl: http://vrf.example.com
keeper:
  pollinterval: 30s
`)
	t.Setenv("CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 25.0, cfg.Raffle.StakeAmount)
	require.Equal(t, time.Hour, cfg.Raffle.DrawInterval)
	require.False(t, cfg.VRF.Mock)
	require.Equal(t, "http://vrf.example.com", cfg.VRF.BaseURL)
	require.Equal(t, 30*time.Second, cfg.Keeper.PollInterval)

	// unset keys keep their defaults
	require.True(t, cfg.Keeper.Enabled)
	require.Equal(t, 1, cfg.VRF.NumWords)
	require.True(t, cfg.Treasury.Mock)
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	viper.Reset()
	t.Setenv("CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "4000", cfg.Server.Port)
	require.Equal(t, 10.0, cfg.Raffle.StakeAmount)
	require.Equal(t, 10*time.Minute, cfg.Raffle.DrawInterval)
	require.True(t, cfg.VRF.Mock)
	require.Equal(t, 250*time.Millisecond, cfg.VRF.MockFulfillDelay)
	require.Equal(t, 1, cfg.VRF.NumWords)
	require.True(t, cfg.Treasury.Mock)
	require.True(t, cfg.Keeper.Enabled)
	require.Equal(t, 5*time.Second, cfg.Keeper.PollInterval)
	require.False(t, cfg.MongoDB.Enabled)
	require.Equal(t, 24*60*60, cfg.JWT.ExpiresIn)
	require.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	require.Equal(t, 10, cfg.RateLimit.Burst)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	viper.Reset()
	dir := writeTempConfig(t, "raffle: [unclosed")
	t.Setenv("CONFIG_PATH", dir)

	_, err := Load()
	require.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("RAFFLE_TEST_KEY", "value")
	require.Equal(t, "value", GetEnv("RAFFLE_TEST_KEY", "fallback"))
	require.Equal(t, "fallback", GetEnv("RAFFLE_TEST_MISSING", "fallback"))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("RAFFLE_TEST_BOOL", "true")
	require.True(t, GetEnvAsBool("RAFFLE_TEST_BOOL", false))

	t.Setenv("RAFFLE_TEST_BOOL", "not-a-bool")
	require.False(t, GetEnvAsBool("RAFFLE_TEST_BOOL", false))

	require.True(t, GetEnvAsBool("RAFFLE_TEST_BOOL_MISSING", true))
}
