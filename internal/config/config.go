// Package config provides configuration loading and structs for the Youyaku server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Fallback   FallbackConfig   `yaml:"fallback"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// EmbeddingConfig holds model provider settings.
type EmbeddingConfig struct {
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	Layers     int    `yaml:"layers"`
	MaxTokens  int    `yaml:"max_tokens"`
	// HiddenLayer selects which layer's hidden states are used as sentence
	// embeddings; negative values count from the last layer.
	HiddenLayer *int   `yaml:"hidden_layer"`
	Reduce      string `yaml:"reduce"`
	CacheSize   int    `yaml:"cache_size"`
}

// HiddenLayerOrDefault returns the configured hidden layer, or -2 when unset.
func (e *EmbeddingConfig) HiddenLayerOrDefault() int {
	if e.HiddenLayer != nil {
		return *e.HiddenLayer
	}
	return -2
}

// SummarizerConfig holds pipeline defaults.
type SummarizerConfig struct {
	Ratio     float64 `yaml:"ratio"`
	MinLength int     `yaml:"min_length"`
	MaxLength int     `yaml:"max_length"`
	UseFirst  *bool   `yaml:"use_first"`
	Algorithm string  `yaml:"algorithm"`
	// RandomState seeds the clustering RNG so summaries are reproducible.
	RandomState int64 `yaml:"random_state"`
}

// UseFirstOrDefault returns whether the first sentence is forced into the
// summary; defaults to true when unset.
func (s *SummarizerConfig) UseFirstOrDefault() bool {
	if s.UseFirst != nil {
		return *s.UseFirst
	}
	return true
}

// FallbackConfig holds frequency summarizer settings.
type FallbackConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
