package daemon

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7311 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7311)
	}
	if cfg.Notifications.MaxPerDay != 6 {
		t.Errorf("Notifications.MaxPerDay = %d, want %d", cfg.Notifications.MaxPerDay, 6)
	}
	if cfg.Challenges.RefreshCron == "" {
		t.Error("Challenges.RefreshCron should default to a schedule")
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	t.Setenv("TOUCHWOOD_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9000
	cfg.Notifications.QuietStart = "21:00"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.Port != 9000 {
		t.Errorf("Port = %d, want 9000", loaded.API.Port)
	}
	if loaded.Notifications.QuietStart != "21:00" {
		t.Errorf("QuietStart = %q, want 21:00", loaded.Notifications.QuietStart)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TOUCHWOOD_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != DefaultConfig().API.Port {
		t.Errorf("expected defaults without a config file, got port %d", cfg.API.Port)
	}
}
