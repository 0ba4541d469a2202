package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.Dispatch.ReplayDelimiter {
		t.Error("ReplayDelimiter default should be true")
	}
	if cfg.Dispatch.ClipboardSettleMs != 50 {
		t.Errorf("ClipboardSettleMs = %d, want 50", cfg.Dispatch.ClipboardSettleMs)
	}
	if cfg.Web.Port != 8790 {
		t.Errorf("Web.Port = %d, want 8790", cfg.Web.Port)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file was not written: %v", err)
	}
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[web]\nport = 9999\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Web.Port != 9999 {
		t.Errorf("Web.Port = %d, want the override 9999", cfg.Web.Port)
	}
	if cfg.Dispatch.MinClickDelayMs != 25 {
		t.Errorf("MinClickDelayMs = %d, want the untouched default 25", cfg.Dispatch.MinClickDelayMs)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg.Dispatch.ReplayDelimiter = false
	cfg.Web.Enabled = false
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Dispatch.ReplayDelimiter {
		t.Error("ReplayDelimiter change did not survive the round trip")
	}
	if reloaded.Web.Enabled {
		t.Error("Web.Enabled change did not survive the round trip")
	}
}

func TestLoadFromRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("malformed TOML accepted")
	}
}
