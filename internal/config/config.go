package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"loto/internal/domain"
)

// GameConfig holds the tunables of a Lo To room.
type GameConfig struct {
	// DrawIntervalSeconds is how many match ticks pass between two called numbers.
	DrawIntervalSeconds int `json:"draw_interval_seconds"`
	DefaultTickets      int `json:"default_tickets"`
	MaxTickets          int `json:"max_tickets"`
	MaxPlayers          int `json:"max_players"`
	MinPlayersToStart   int `json:"min_players_to_start"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding bots to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	BotMinReactionSeconds   int `json:"bot_min_reaction_seconds"`
	BotMaxReactionSeconds   int `json:"bot_max_reaction_seconds"`
	// ClaimsPerSecond and ClaimBurst rate limit Kinh calls per user.
	ClaimsPerSecond float64 `json:"claims_per_second"`
	ClaimBurst      int     `json:"claim_burst"`
	// RandomSource is "math" or "crypto".
	RandomSource string `json:"random_source"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() GameConfig {
	return GameConfig{
		DrawIntervalSeconds:     3,
		DefaultTickets:          1,
		MaxTickets:              4,
		MaxPlayers:              8,
		MinPlayersToStart:       2,
		BotAutoFillDelaySeconds: 5,
		BotMinReactionSeconds:   1,
		BotMaxReactionSeconds:   3,
		ClaimsPerSecond:         1,
		ClaimBurst:              2,
		RandomSource:            "math",
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Parse decodes a config document and fills missing fields from Defaults.
func Parse(data []byte) (*GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	c.fill(Defaults())
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *GameConfig) fill(d GameConfig) {
	if c.DrawIntervalSeconds <= 0 {
		c.DrawIntervalSeconds = d.DrawIntervalSeconds
	}
	if c.DefaultTickets <= 0 {
		c.DefaultTickets = d.DefaultTickets
	}
	if c.MaxTickets <= 0 {
		c.MaxTickets = d.MaxTickets
	}
	if c.MaxPlayers <= 0 {
		c.MaxPlayers = d.MaxPlayers
	}
	if c.MinPlayersToStart <= 0 {
		c.MinPlayersToStart = d.MinPlayersToStart
	}
	if c.BotAutoFillDelaySeconds <= 0 {
		c.BotAutoFillDelaySeconds = d.BotAutoFillDelaySeconds
	}
	if c.BotMinReactionSeconds <= 0 {
		c.BotMinReactionSeconds = d.BotMinReactionSeconds
	}
	if c.BotMaxReactionSeconds <= 0 {
		c.BotMaxReactionSeconds = d.BotMaxReactionSeconds
	}
	if c.ClaimsPerSecond <= 0 {
		c.ClaimsPerSecond = d.ClaimsPerSecond
	}
	if c.ClaimBurst <= 0 {
		c.ClaimBurst = d.ClaimBurst
	}
	if c.RandomSource == "" {
		c.RandomSource = d.RandomSource
	}
}

func (c *GameConfig) validate() error {
	if c.MaxTickets > domain.MaxTicketsPerPlayer {
		return fmt.Errorf("max_tickets %d exceeds the limit of %d", c.MaxTickets, domain.MaxTicketsPerPlayer)
	}
	if c.DefaultTickets > c.MaxTickets {
		return fmt.Errorf("default_tickets %d exceeds max_tickets %d", c.DefaultTickets, c.MaxTickets)
	}
	if c.MinPlayersToStart > c.MaxPlayers {
		return fmt.Errorf("min_players_to_start %d exceeds max_players %d", c.MinPlayersToStart, c.MaxPlayers)
	}
	if c.BotMinReactionSeconds > c.BotMaxReactionSeconds {
		return fmt.Errorf("bot reaction range [%d,%d] is empty", c.BotMinReactionSeconds, c.BotMaxReactionSeconds)
	}
	if c.RandomSource != "math" && c.RandomSource != "crypto" {
		return fmt.Errorf("unknown random_source %q", c.RandomSource)
	}
	return nil
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		cfg, loadErr = Parse(data)
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or Defaults when nothing was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Defaults()
	}
	return *cfg
}
