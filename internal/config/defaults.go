package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/youyaku/data/models/bert-base-uncased.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 768
	}
	if cfg.Embedding.Layers == 0 {
		cfg.Embedding.Layers = 12
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.HiddenLayer == nil {
		l := -2
		cfg.Embedding.HiddenLayer = &l
	}
	if cfg.Embedding.Reduce == "" {
		cfg.Embedding.Reduce = "mean"
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Summarizer.Ratio == 0 {
		cfg.Summarizer.Ratio = 0.2
	}
	if cfg.Summarizer.MinLength == 0 {
		cfg.Summarizer.MinLength = 40
	}
	if cfg.Summarizer.MaxLength == 0 {
		cfg.Summarizer.MaxLength = 600
	}
	if cfg.Summarizer.UseFirst == nil {
		t := true
		cfg.Summarizer.UseFirst = &t
	}
	if cfg.Summarizer.Algorithm == "" {
		cfg.Summarizer.Algorithm = "kmeans"
	}
	if cfg.Summarizer.RandomState == 0 {
		cfg.Summarizer.RandomState = 12345
	}
	if cfg.Fallback.MaxSentences == 0 {
		cfg.Fallback.MaxSentences = 3
	}
}
