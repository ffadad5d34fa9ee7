// Package main is the Youyaku CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/youyaku/internal/cluster"
	"github.com/hyperjump/youyaku/internal/config"
	"github.com/hyperjump/youyaku/internal/embedding"
	"github.com/hyperjump/youyaku/internal/extract"
	"github.com/hyperjump/youyaku/internal/frequency"
	"github.com/hyperjump/youyaku/internal/sentence"
	"github.com/hyperjump/youyaku/internal/server"
	"github.com/hyperjump/youyaku/internal/summarizer"
	"github.com/hyperjump/youyaku/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/youyaku/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used instead.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "summarize":
		runSummarize()
	case "version", "--version", "-v":
		fmt.Printf("youyaku version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// components bundles everything a summarization entry point needs.
type components struct {
	Provider   embedding.Provider
	Summarizer *summarizer.Summarizer
	Fallback   *frequency.Summarizer
}

// Close releases the model provider.
func (c *components) Close() {
	if c.Provider != nil {
		_ = c.Provider.Close()
	}
}

// initializeComponents builds the provider, pipeline, and fallback from cfg.
// Enum-valued config fields are validated here, before any model is loaded.
func initializeComponents(cfg *config.Config, logger *zap.Logger, needModel bool) (*components, error) {
	reduce, err := embedding.ParseReduction(cfg.Embedding.Reduce)
	if err != nil {
		return nil, fmt.Errorf("embedding.reduce: %w", err)
	}
	algorithm, err := cluster.ParseAlgorithm(cfg.Summarizer.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("summarizer.algorithm: %w", err)
	}
	fallback, err := frequency.New(logger)
	if err != nil {
		return nil, err
	}
	c := &components{Fallback: fallback}
	if !needModel {
		return c, nil
	}

	provider, err := embedding.NewONNXProvider(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Layers,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
	)
	if err != nil {
		return nil, fmt.Errorf("create model provider: %w", err)
	}
	segmenter, err := sentence.NewSegmenter()
	if err != nil {
		provider.Close()
		return nil, err
	}
	defaults := summarizer.Defaults{
		Ratio:     cfg.Summarizer.Ratio,
		MinLength: cfg.Summarizer.MinLength,
		MaxLength: cfg.Summarizer.MaxLength,
		UseFirst:  cfg.Summarizer.UseFirstOrDefault(),
		Algorithm: algorithm,
		Seed:      cfg.Summarizer.RandomState,
		Layer:     cfg.Embedding.HiddenLayerOrDefault(),
		Reduce:    reduce,
	}
	c.Provider = provider
	c.Summarizer = summarizer.New(provider, segmenter, defaults, cfg.Embedding.CacheSize, logger)
	return c, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	c, err := initializeComponents(cfg, logger, true)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer c.Close()

	srv := server.NewServer(c.Summarizer, c.Fallback, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runSummarize() {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	file := fs.String("file", "", "document to summarize (.txt, .md, .pdf, .docx, .odt, .rtf, .xlsx); stdin when omitted")
	numSentences := fs.Int("sentences", 0, "number of sentences to keep (overrides -ratio)")
	ratio := fs.Float64("ratio", 0, "fraction of sentences to keep")
	algorithm := fs.String("algorithm", "", "clustering algorithm: kmeans or gmm")
	minLength := fs.Int("min-length", 0, "minimum sentence length (characters)")
	maxLength := fs.Int("max-length", 0, "maximum sentence length (characters)")
	useFirst := fs.Bool("use-first", true, "force the first sentence into the summary")
	useFallback := fs.Bool("fallback", false, "use the frequency summarizer (no model required)")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	body, err := readInput(*file)
	if err != nil {
		fmt.Printf("Failed to read input: %v\n", err)
		os.Exit(1)
	}
	if strings.TrimSpace(body) == "" {
		fmt.Println("Nothing to summarize")
		os.Exit(1)
	}

	c, err := initializeComponents(cfg, logger, !*useFallback)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	if *useFallback {
		count := *numSentences
		if count <= 0 {
			count = cfg.Fallback.MaxSentences
		}
		sents, err := c.Fallback.Summarize(body, count)
		if err != nil {
			fmt.Printf("Summarization failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(strings.Join(sents, " "))
		return
	}

	opts := summarizer.Options{
		Ratio:        *ratio,
		MinLength:    *minLength,
		MaxLength:    *maxLength,
		NumSentences: *numSentences,
		Algorithm:    cluster.Algorithm(*algorithm),
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "use-first" {
			opts.UseFirst = useFirst
		}
	})
	summary, err := c.Summarizer.Summarize(context.Background(), body, opts)
	if err != nil {
		fmt.Printf("Summarization failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(summary)
}

// readInput returns the text of the given file (extracted per format), or
// stdin when path is empty.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return extract.NewExtractor().Extract(path)
}

func printUsage() {
	fmt.Println(`youyaku - extractive text summarization

Usage:
  youyaku server [-config path] [-debug]        start the HTTP API
  youyaku summarize [flags]                     summarize a file or stdin
  youyaku version                               print version
  youyaku help                                  show this help

Summarize flags:
  -file path          document to summarize; stdin when omitted
  -sentences N        number of sentences to keep (overrides -ratio)
  -ratio R            fraction of sentences to keep (default from config)
  -algorithm NAME     kmeans or gmm
  -min-length N       minimum sentence length in characters
  -max-length N       maximum sentence length in characters
  -use-first=false    do not force the first sentence into the summary
  -fallback           frequency-based summarizer, no model required

Examples:
  youyaku summarize -file report.pdf -sentences 3
  cat article.txt | youyaku summarize -ratio 0.3 -algorithm gmm
  youyaku summarize -fallback -sentences 2 -file notes.md`)
}
