// Package models defines data structures shared across the pipeline.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for a sync run. Values come from
// config.yaml when present; CLI flags override file values.
type Config struct {
	FeedURL      string `yaml:"feed_url"`
	StoreName    string `yaml:"store_name"`
	OutputDir    string `yaml:"output_dir"`
	Workers      int    `yaml:"workers"`
	ArticleLimit int    `yaml:"article_limit"`
	APIKeyEnv    string `yaml:"api_key_env"`
	Distill      bool   `yaml:"distill"`
}

// DefaultConfig returns the configuration used when no file or flag
// supplies a value.
func DefaultConfig() Config {
	return Config{
		OutputDir:    "output",
		Workers:      10,
		ArticleLimit: 50,
		APIKeyEnv:    "OPENAI_API_KEY",
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error; the defaults are returned unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
