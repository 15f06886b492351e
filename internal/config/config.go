package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds runtime settings for the katarik module.
type GameConfig struct {
	// DefaultRoomID is used when a client joins without naming a room.
	DefaultRoomID string `json:"default_room_id"`
	// TickRate is the match loop tick rate passed to Nakama (1..60).
	TickRate int `json:"tick_rate"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// DefaultRoomID returns the configured default room id, or "default".
func DefaultRoomID() string {
	if cfg == nil || cfg.DefaultRoomID == "" {
		return "default"
	}
	return cfg.DefaultRoomID
}

// TickRate returns the configured match tick rate, clamped to Nakama's 1..60.
func TickRate() int {
	if cfg == nil || cfg.TickRate < 1 || cfg.TickRate > 60 {
		return 10
	}
	return cfg.TickRate
}
