package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.DefaultLimit != 10 {
		t.Errorf("DefaultLimit = %d, want 10", cfg.Server.DefaultLimit)
	}
	if cfg.Server.Addr == "" {
		t.Error("Addr must have a default")
	}
	if cfg.Corpus.Path == "" {
		t.Error("Corpus.Path must have a default")
	}
	if !cfg.Cache.Enabled || cfg.Cache.MaxEntries <= 0 {
		t.Errorf("cache defaults look wrong: %+v", cfg.Cache)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Server.DefaultLimit != DefaultConfig().Server.DefaultLimit {
		t.Errorf("fresh config should carry defaults, got %+v", cfg.Server)
	}

	// The file exists now and round-trips modified values.
	cfg.Server.Addr = ":9090"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Server.Addr != ":9090" {
		t.Errorf("Addr = %q after round trip, want \":9090\"", loaded.Server.Addr)
	}
}

func TestInitConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := InitConfig("")
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Server.DefaultLimit != 10 {
		t.Errorf("DefaultLimit = %d, want 10", cfg.Server.DefaultLimit)
	}
}
