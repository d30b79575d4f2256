package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Sessions.Dir != "sessions" {
		t.Errorf("Sessions.Dir = %q, want sessions", cfg.Sessions.Dir)
	}
	// Generator defaults to disabled so a fresh checkout works offline
	if cfg.Generator.Provider != "disabled" {
		t.Errorf("Generator.Provider = %q, want disabled", cfg.Generator.Provider)
	}
	if cfg.Generator.TimeoutMs <= 0 {
		t.Error("Generator.TimeoutMs should be positive")
	}
	if cfg.Auth.Enabled {
		t.Error("Auth should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected defaults when config file missing, got port %q", cfg.Server.Port)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, ".etlmap")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `{
  "version": 1,
  "server": {"host": "0.0.0.0", "port": "9090"},
  "generator": {"provider": "bedrock", "modelId": "anthropic.claude-3-5-sonnet-20241022-v2:0"}
}`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Generator.Provider != "bedrock" {
		t.Errorf("Generator.Provider = %q, want bedrock", cfg.Generator.Provider)
	}
	// Unset fields fall back to defaults
	if cfg.Sessions.Dir != "sessions" {
		t.Errorf("Sessions.Dir = %q, want default", cfg.Sessions.Dir)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.Port = "7070"
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, want 7070", loaded.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad version", func(c *Config) { c.Version = 2 }, true},
		{"bad provider", func(c *Config) { c.Generator.Provider = "openai" }, true},
		{"bedrock without model", func(c *Config) {
			c.Generator.Provider = "bedrock"
			c.Generator.ModelID = ""
		}, true},
		{"empty sessions dir", func(c *Config) { c.Sessions.Dir = "" }, true},
		{"zero concurrency", func(c *Config) { c.Server.MaxConcurrentAnalyses = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
