package config

import (
	"fmt"
	"os"
	"time"

	yaml "go.yaml.in/yaml/v3"
)

// Patreon configures the elevated-status (recurring reminder) check.
// When disabled, every user is treated as elevated.
type Patreon struct {
	Enabled bool   `yaml:"enabled"`
	GuildID string `yaml:"guild_id"`
	RoleID  string `yaml:"role_id"`
}

// Config is the process configuration, loaded from an optional YAML file
// with environment-variable fallbacks for secrets.
type Config struct {
	Token         string  `yaml:"token"`
	DBPath        string  `yaml:"db_path"`
	LocalTimezone string  `yaml:"local_timezone"`
	LogLevel      string  `yaml:"log_level"`
	BotListToken  string  `yaml:"bot_list_token"`
	PollInterval  string  `yaml:"poll_interval"`
	ParseWorkers  int     `yaml:"parse_workers"`
	Patreon       Patreon `yaml:"patreon"`
}

func defaults() *Config {
	return &Config{
		DBPath:        "hourglass.db",
		LocalTimezone: "UTC",
		LogLevel:      "info",
		PollInterval:  "30s",
		ParseWorkers:  4,
	}
}

// Load reads the config file at path, if it exists, on top of defaults.
// DISCORD_TOKEN and BOT_LIST_TOKEN env vars override the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("BOT_LIST_TOKEN"); v != "" {
		cfg.BotListToken = v
	}

	if _, err := time.LoadLocation(cfg.LocalTimezone); err != nil {
		return nil, fmt.Errorf("invalid local_timezone %q: %w", cfg.LocalTimezone, err)
	}
	if _, err := cfg.PollEvery(); err != nil {
		return nil, fmt.Errorf("invalid poll_interval %q: %w", cfg.PollInterval, err)
	}
	if cfg.ParseWorkers < 1 {
		cfg.ParseWorkers = 1
	}

	return cfg, nil
}

// PollEvery returns the reminder poller cadence as a duration.
func (c *Config) PollEvery() (time.Duration, error) {
	return time.ParseDuration(c.PollInterval)
}

// Location returns the configured local timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.LocalTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
