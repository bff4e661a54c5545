package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI struct {
		Provider       string  `yaml:"provider"`
		Model          string  `yaml:"model"`
		APIKey         string  `yaml:"api_key"`
		BaseURL        string  `yaml:"base_url"`
		Temperature    float64 `yaml:"temperature"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"ai"`
	Editor struct {
		// ContextWindow is the number of characters of surrounding text sent
		// to the model on each side of a located excerpt.
		ContextWindow int `yaml:"context_window"`
	} `yaml:"editor"`
	Server struct {
		Addr string `yaml:"addr"`
		Mode string `yaml:"mode"` // "dev" or "prod", controls logging
	} `yaml:"server"`
	DB struct {
		Path string `yaml:"path"`
	} `yaml:"db"`
}

const (
	DefaultModel         = "gemini-flash-latest"
	DefaultTemperature   = 0.7
	DefaultContextWindow = 300
	DefaultTimeout       = 90 * time.Second
)

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if apiKey := os.Getenv("BLOGSMITH_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if provider := os.Getenv("BLOGSMITH_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config with every tunable at its default, for callers
// that run without a config.yaml.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.AI.Model == "" {
		c.AI.Model = DefaultModel
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = DefaultTemperature
	}
	if c.Editor.ContextWindow <= 0 {
		c.Editor.ContextWindow = DefaultContextWindow
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.DB.Path == "" {
		c.DB.Path = "blogsmith.db"
	}
}

// Timeout returns the configured generation timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.AI.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}
