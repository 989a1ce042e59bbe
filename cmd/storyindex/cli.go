package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/storyindex"
	"github.com/fwojciec/storyindex/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape    ScrapeCmd    `cmd:"" help:"Crawl the site and write the search artifacts"`
	Wordcloud WordcloudCmd `cmd:"" help:"Rebuild the word cloud from an existing search index"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	BaseURL     string        `arg:"" optional:"" help:"Site to scrape (default: base_url from the config file)"`
	Limit       int           `short:"n" env:"STORYINDEX_LIMIT" help:"Process at most N articles"`
	DryRun      bool          `env:"STORYINDEX_DRY_RUN" help:"Run without writing artifacts"`
	Concurrency int           `short:"c" env:"STORYINDEX_CONCURRENCY" help:"Concurrent article fetches (default: from config)"`
	Timeout     time.Duration `short:"t" env:"STORYINDEX_TIMEOUT" help:"Fetch timeout per request (default: from config)"`
	Out         string        `short:"o" env:"STORYINDEX_OUT" help:"Output directory (default: from config)"`
	Config      string        `env:"STORYINDEX_CONFIG" help:"YAML config file (default: storyindex.yaml if present)"`
	Verbose     bool          `short:"v" env:"STORYINDEX_VERBOSE" help:"Log every fetch and extraction"`
}

// Validate rejects flag values kong cannot check on its own.
func (c *ScrapeCmd) Validate() error {
	if c.Limit < 0 {
		return storyindex.Errorf(storyindex.EINVALID, "--limit must not be negative")
	}
	if c.Concurrency < 0 {
		return storyindex.Errorf(storyindex.EINVALID, "--concurrency must not be negative")
	}
	if c.Timeout < 0 {
		return storyindex.Errorf(storyindex.EINVALID, "--timeout must not be negative")
	}
	return nil
}

// config loads the config file and applies the flags over it.
func (c *ScrapeCmd) config() (storyindex.Config, error) {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return cfg, err
	}
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	if c.Out != "" {
		cfg.OutputDir = c.Out
	}
	if err := cfg.Validate(); err != nil {
		return cfg, usageError{err}
	}
	return cfg, nil
}

// WordcloudCmd is the "wordcloud" subcommand.
type WordcloudCmd struct {
	Out    string `short:"o" env:"STORYINDEX_OUT" help:"Directory holding the search index (default: from config)"`
	Config string `env:"STORYINDEX_CONFIG" help:"YAML config file (default: storyindex.yaml if present)"`
}

// config loads the config file and applies the flags over it.
func (c *WordcloudCmd) config() (storyindex.Config, error) {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return cfg, err
	}
	if c.Out != "" {
		cfg.OutputDir = c.Out
	}
	if err := cfg.Validate(); err != nil {
		return cfg, usageError{err}
	}
	return cfg, nil
}

// loadConfig reads path over the defaults. An empty path reads the default
// config file if it exists.
func loadConfig(path string) (storyindex.Config, error) {
	var cfg storyindex.Config
	var err error
	if path == "" {
		cfg, err = yaml.LoadConfigIfExists(yaml.DefaultConfigFile, storyindex.DefaultConfig())
	} else {
		cfg, err = yaml.LoadConfig(path, storyindex.DefaultConfig())
	}
	if err != nil {
		return cfg, usageError{err}
	}
	return cfg, nil
}
