package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete service configuration.
type Config struct {
	Server  ServerSettings  `hcl:"server,block"`
	Redis   RedisSettings   `hcl:"redis,block"`
	Webhook WebhookSettings `hcl:"webhook,block"`
	Game    GameSettings    `hcl:"game,block"`
}

// ServerSettings contains the HTTP listener configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RedisSettings locates the state store.
type RedisSettings struct {
	Address string `hcl:"address,optional"`
	DB      int    `hcl:"db,optional"`
}

// WebhookSettings configures turn notifications. An empty URL disables them.
type WebhookSettings struct {
	URL string `hcl:"url,optional"`
}

// GameSettings tunes the duel rules and how long finished state lingers.
type GameSettings struct {
	StartingChips   int `hcl:"starting_chips,optional"`
	MinBet          int `hcl:"min_bet,optional"`
	MaxHands        int `hcl:"max_hands,optional"`
	StateTTLMinutes int `hcl:"state_ttl_minutes,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Redis: RedisSettings{
			Address: "localhost:6379",
			DB:      0,
		},
		Game: GameSettings{
			StartingChips:   100,
			MinBet:          5,
			MaxHands:        5,
			StateTTLMinutes: 60,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Redis.Address == "" {
		config.Redis.Address = defaults.Redis.Address
	}
	if config.Game.StartingChips == 0 {
		config.Game.StartingChips = defaults.Game.StartingChips
	}
	if config.Game.MinBet == 0 {
		config.Game.MinBet = defaults.Game.MinBet
	}
	if config.Game.MaxHands == 0 {
		config.Game.MaxHands = defaults.Game.MaxHands
	}
	if config.Game.StateTTLMinutes == 0 {
		config.Game.StateTTLMinutes = defaults.Game.StateTTLMinutes
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.StartingChips < c.Game.MinBet {
		return fmt.Errorf("starting_chips (%d) must be at least min_bet (%d)",
			c.Game.StartingChips, c.Game.MinBet)
	}
	if c.Game.MinBet < 1 {
		return fmt.Errorf("min_bet must be positive, got %d", c.Game.MinBet)
	}
	if c.Game.MaxHands < 1 {
		return fmt.Errorf("max_hands must be positive, got %d", c.Game.MaxHands)
	}
	return nil
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// StateTTL returns the match state retention as a duration.
func (c *Config) StateTTL() time.Duration {
	return time.Duration(c.Game.StateTTLMinutes) * time.Minute
}
