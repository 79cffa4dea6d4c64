package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Settings == nil {
		t.Fatal("settings missing")
	}
	if cfg.Settings.ServerURL == "" {
		t.Error("default server url missing")
	}
	if loader.Exists() {
		t.Error("plain Load must not create the file")
	}
}

func TestLoadWithCreateWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	loader := NewLoader(path)

	if _, err := loader.LoadWithCreate(true); err != nil {
		t.Fatalf("load with create: %v", err)
	}
	if !loader.Exists() {
		t.Error("config file was not created")
	}
}

func TestLoadParsesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	content := `version: "1"
settings:
  server_url: http://10.0.0.5:5002
  timeout_seconds: 10
  log_poll_seconds: 3
  summary_poll_seconds: 20
  log_window: 100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	s := cfg.Settings
	if s.ServerURL != "http://10.0.0.5:5002" {
		t.Errorf("server url = %q", s.ServerURL)
	}
	if s.RequestTimeout() != 10*time.Second {
		t.Errorf("timeout = %s", s.RequestTimeout())
	}
	if s.LogPollInterval() != 3*time.Second {
		t.Errorf("log poll = %s", s.LogPollInterval())
	}
	if s.SummaryPollInterval() != 20*time.Second {
		t.Errorf("summary poll = %s", s.SummaryPollInterval())
	}
	if s.LogWindowSize() != 100 {
		t.Errorf("log window = %d", s.LogWindowSize())
	}
	if s.Logger == nil {
		t.Error("missing logger section should fall back to defaults")
	}
}

func TestIntervalDefaults(t *testing.T) {
	s := &Settings{}

	if s.LogPollInterval() != 6*time.Second {
		t.Errorf("log poll default = %s, want 6s", s.LogPollInterval())
	}
	if s.SummaryPollInterval() != 10*time.Second {
		t.Errorf("summary poll default = %s, want 10s", s.SummaryPollInterval())
	}
	if s.LogWindowSize() != 400 {
		t.Errorf("log window default = %d, want 400", s.LogWindowSize())
	}
	if s.RequestTimeout() != 30*time.Second {
		t.Errorf("timeout default = %s, want 30s", s.RequestTimeout())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", DefaultConfigFileName)
	loader := NewLoader(path)

	cfg := DefaultConfig()
	cfg.Settings.ServerURL = "http://example.test:5002"
	cfg.Settings.LogPollSeconds = 7

	if err := loader.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Settings.ServerURL != "http://example.test:5002" {
		t.Errorf("server url = %q", loaded.Settings.ServerURL)
	}
	if loaded.Settings.LogPollSeconds != 7 {
		t.Errorf("log poll seconds = %d", loaded.Settings.LogPollSeconds)
	}
}
