package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete etlmap configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Server    ServerConfig    `json:"server" mapstructure:"server"`
	Sessions  SessionsConfig  `json:"sessions" mapstructure:"sessions"`
	Generator GeneratorConfig `json:"generator" mapstructure:"generator"`
	Auth      AuthConfig      `json:"auth" mapstructure:"auth"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port string `json:"port" mapstructure:"port"`
	// MaxConcurrentAnalyses caps simultaneous pipeline runs over HTTP
	MaxConcurrentAnalyses int `json:"maxConcurrentAnalyses" mapstructure:"maxConcurrentAnalyses"`
}

// SessionsConfig contains session storage configuration
type SessionsConfig struct {
	Dir           string `json:"dir" mapstructure:"dir"`
	RetentionDays int    `json:"retentionDays" mapstructure:"retentionDays"`
}

// GeneratorConfig contains text-generation service configuration
type GeneratorConfig struct {
	Provider  string `json:"provider" mapstructure:"provider"` // "bedrock" or "disabled"
	ModelID   string `json:"modelId" mapstructure:"modelId"`
	Region    string `json:"region" mapstructure:"region"`
	TimeoutMs int    `json:"timeoutMs" mapstructure:"timeoutMs"`
	MaxTokens int    `json:"maxTokens" mapstructure:"maxTokens"`
}

// Timeout returns the generator timeout as a duration.
func (g GeneratorConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutMs) * time.Millisecond
}

// AuthConfig contains API authentication configuration
type AuthConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Host:                  "localhost",
			Port:                  "8080",
			MaxConcurrentAnalyses: 4,
		},
		Sessions: SessionsConfig{
			Dir:           "sessions",
			RetentionDays: 30,
		},
		Generator: GeneratorConfig{
			Provider:  "disabled",
			ModelID:   "anthropic.claude-3-5-sonnet-20241022-v2:0",
			Region:    "us-east-1",
			TimeoutMs: 60000,
			MaxTokens: 2048,
		},
		Auth: AuthConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .etlmap/config.json under root.
// If no config file exists, the defaults are returned.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.maxConcurrentAnalyses", 4)
	v.SetDefault("sessions.dir", "sessions")
	v.SetDefault("sessions.retentionDays", 30)
	v.SetDefault("generator.provider", "disabled")
	v.SetDefault("generator.region", "us-east-1")
	v.SetDefault("generator.timeoutMs", 60000)
	v.SetDefault("generator.maxTokens", 2048)
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".etlmap"))

	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .etlmap/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".etlmap")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	switch c.Generator.Provider {
	case "bedrock", "disabled":
	default:
		return &ConfigError{Field: "generator.provider", Message: "must be 'bedrock' or 'disabled'"}
	}
	if c.Generator.Provider == "bedrock" && c.Generator.ModelID == "" {
		return &ConfigError{Field: "generator.modelId", Message: "required when provider is bedrock"}
	}
	if c.Sessions.Dir == "" {
		return &ConfigError{Field: "sessions.dir", Message: "must not be empty"}
	}
	if c.Server.MaxConcurrentAnalyses < 1 {
		return &ConfigError{Field: "server.maxConcurrentAnalyses", Message: "must be at least 1"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
