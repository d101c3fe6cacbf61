package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokerduel.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", config.ListenAddr())
	assert.Equal(t, "localhost:6379", config.Redis.Address)
	assert.Equal(t, 100, config.Game.StartingChips)
	assert.Equal(t, 5, config.Game.MinBet)
	assert.Equal(t, 5, config.Game.MaxHands)
	assert.Equal(t, time.Hour, config.StateTTL())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

redis {
  address = "redis.internal:6379"
  db      = 2
}

webhook {
  url = "https://hooks.example.com/poker"
}

game {
  starting_chips    = 200
  min_bet           = 10
  max_hands         = 7
  state_ttl_minutes = 30
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", config.ListenAddr())
	assert.Equal(t, "debug", config.Server.LogLevel)
	assert.Equal(t, "redis.internal:6379", config.Redis.Address)
	assert.Equal(t, 2, config.Redis.DB)
	assert.Equal(t, "https://hooks.example.com/poker", config.Webhook.URL)
	assert.Equal(t, 200, config.Game.StartingChips)
	assert.Equal(t, 10, config.Game.MinBet)
	assert.Equal(t, 7, config.Game.MaxHands)
	assert.Equal(t, 30*time.Minute, config.StateTTL())
}

func TestLoadConfigPartialFileGetsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server {
  port = 9191
}

redis {}
webhook {}
game {}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9191", config.ListenAddr())
	assert.Equal(t, "info", config.Server.LogLevel)
	assert.Equal(t, 100, config.Game.StartingChips)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfigFile(t, `
server {
  port = 9090
}

redis {}
webhook {}

game {
  starting_chips = 3
  min_bet        = 5
}
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting_chips")
}

func TestConfigValidate(t *testing.T) {
	config := DefaultConfig()
	config.Server.Port = 0
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.Game.MaxHands = -1
	assert.Error(t, config.Validate())

	assert.NoError(t, DefaultConfig().Validate())
}
