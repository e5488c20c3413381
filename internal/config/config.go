package config

import (
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

// AppConfig configures the arena binaries. Values come from an optional
// YAML file, then environment variables override field by field.
type AppConfig struct {
	RedisURL    string `yaml:"redis_url" envconfig:"REDIS_URL"`
	DatabaseURL string `yaml:"database_url" envconfig:"DATABASE_URL"`

	EventName   string `yaml:"event_name" envconfig:"ARENA_EVENT_NAME"`
	WhiteName   string `yaml:"white_name" envconfig:"ARENA_WHITE_NAME"`
	BlackName   string `yaml:"black_name" envconfig:"ARENA_BLACK_NAME"`
	StartFEN    string `yaml:"start_fen" envconfig:"ARENA_START_FEN"`
	UndoEnabled bool   `yaml:"undo_enabled" envconfig:"ARENA_UNDO_ENABLED"`
	MatchTTLSec int    `yaml:"match_ttl_sec" envconfig:"ARENA_MATCH_TTL_SEC"`
}

// Load reads path (when non-empty) and applies environment overrides.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		EventName:   "Casual Game",
		WhiteName:   "White",
		BlackName:   "Black",
		UndoEnabled: true,
		MatchTTLSec: 86400,
	}

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "config env overrides")
	}

	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.StartFEN = strings.TrimSpace(cfg.StartFEN)
	if cfg.MatchTTLSec <= 0 {
		return nil, errors.New("match_ttl_sec must be positive")
	}
	return cfg, nil
}
