package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("dimensions = %d, want 768", cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.Layers != 12 {
		t.Errorf("layers = %d, want 12", cfg.Embedding.Layers)
	}
	if cfg.Embedding.MaxTokens != 256 {
		t.Errorf("max tokens = %d, want 256", cfg.Embedding.MaxTokens)
	}
	if got := cfg.Embedding.HiddenLayerOrDefault(); got != -2 {
		t.Errorf("hidden layer = %d, want -2", got)
	}
	if cfg.Embedding.Reduce != "mean" {
		t.Errorf("reduce = %q, want mean", cfg.Embedding.Reduce)
	}
	if cfg.Embedding.CacheSize != 10000 {
		t.Errorf("cache size = %d, want 10000", cfg.Embedding.CacheSize)
	}
	if cfg.Summarizer.Ratio != 0.2 {
		t.Errorf("ratio = %v, want 0.2", cfg.Summarizer.Ratio)
	}
	if cfg.Summarizer.MinLength != 40 || cfg.Summarizer.MaxLength != 600 {
		t.Errorf("length bounds = (%d, %d), want (40, 600)", cfg.Summarizer.MinLength, cfg.Summarizer.MaxLength)
	}
	if !cfg.Summarizer.UseFirstOrDefault() {
		t.Error("use_first should default to true")
	}
	if cfg.Summarizer.Algorithm != "kmeans" {
		t.Errorf("algorithm = %q, want kmeans", cfg.Summarizer.Algorithm)
	}
	if cfg.Summarizer.RandomState != 12345 {
		t.Errorf("random state = %d, want 12345", cfg.Summarizer.RandomState)
	}
	if cfg.Fallback.MaxSentences != 3 {
		t.Errorf("fallback max sentences = %d, want 3", cfg.Fallback.MaxSentences)
	}
}

func TestApplyDefaults_ExplicitFalseSurvives(t *testing.T) {
	f := false
	cfg := Config{Summarizer: SummarizerConfig{UseFirst: &f}}
	ApplyDefaults(&cfg)
	if cfg.Summarizer.UseFirstOrDefault() {
		t.Error("explicit use_first: false was overwritten")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: 0.0.0.0
  port: 9090
embedding:
  model_path: ./models/bert.onnx
  hidden_layer: -1
summarizer:
  ratio: 0.5
  use_first: false
  algorithm: gmm
fallback:
  max_sentences: 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if got := cfg.Embedding.HiddenLayerOrDefault(); got != -1 {
		t.Errorf("hidden layer = %d, want -1", got)
	}
	if want := filepath.Join(dir, "models/bert.onnx"); cfg.Embedding.ModelPath != want {
		t.Errorf("model path = %q, want %q", cfg.Embedding.ModelPath, want)
	}
	if cfg.Summarizer.Ratio != 0.5 {
		t.Errorf("ratio = %v, want 0.5", cfg.Summarizer.Ratio)
	}
	if cfg.Summarizer.UseFirstOrDefault() {
		t.Error("use_first should be false")
	}
	if cfg.Summarizer.Algorithm != "gmm" {
		t.Errorf("algorithm = %q, want gmm", cfg.Summarizer.Algorithm)
	}
	// Unset fields still receive defaults.
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("dimensions = %d, want 768", cfg.Embedding.Dimensions)
	}
	if cfg.Fallback.MaxSentences != 5 {
		t.Errorf("fallback max sentences = %d, want 5", cfg.Fallback.MaxSentences)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
