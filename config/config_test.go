package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "hourglass.db" || cfg.LocalTimezone != "UTC" || cfg.ParseWorkers != 4 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	every, err := cfg.PollEvery()
	if err != nil || every != 30*time.Second {
		t.Errorf("PollEvery = %v, %v", every, err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
token: abc
db_path: /tmp/test.db
local_timezone: Europe/London
poll_interval: 10s
parse_workers: 0
patreon:
  enabled: true
  guild_id: "1"
  role_id: "2"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "abc" || cfg.DBPath != "/tmp/test.db" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.ParseWorkers != 1 {
		t.Errorf("parse_workers not clamped: %d", cfg.ParseWorkers)
	}
	if !cfg.Patreon.Enabled || cfg.Patreon.GuildID != "1" {
		t.Errorf("patreon block not applied: %+v", cfg.Patreon)
	}
	if cfg.Location().String() != "Europe/London" {
		t.Errorf("Location = %v", cfg.Location())
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "from-env" {
		t.Errorf("Token = %q, want env override", cfg.Token)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, data := range map[string]string{
		"timezone": "local_timezone: Nowhere/Special\n",
		"interval": "poll_interval: often\n",
	} {
		path := filepath.Join(t.TempDir(), "config.yml")
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: bad value accepted", name)
		}
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err != nil {
		t.Fatal(err)
	}
}
