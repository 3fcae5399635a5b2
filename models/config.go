package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFetchTimeout             = 10 * time.Second
	DefaultUserAgent                = "Mozilla/5.0 (compatible; HTMLParserBot/1.0; +https://example.com/bot)"
	DefaultMaxBodyBytes       int64 = 10 << 20
	DefaultKeywordsPerSection       = 2
	DefaultCacheMaxAge              = 24 * time.Hour
)

// FetchConfig controls how remote pages are retrieved.
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// ComposeConfig controls post composition.
type ComposeConfig struct {
	KeywordsPerSection int `yaml:"keywords_per_section"`
}

// CacheConfig enables the raw HTML cache when Dir is set.
type CacheConfig struct {
	Dir    string        `yaml:"dir"`
	MaxAge time.Duration `yaml:"max_age"`
}

// ArchiveConfig enables the post archive when Path is set.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

// Config holds runtime configuration. Values come from an optional YAML file
// layered over DefaultConfig, then CLI flags.
type Config struct {
	Fetch   FetchConfig   `yaml:"fetch"`
	Compose ComposeConfig `yaml:"compose"`
	Cache   CacheConfig   `yaml:"cache"`
	Archive ArchiveConfig `yaml:"archive"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Fetch: FetchConfig{
			Timeout:      DefaultFetchTimeout,
			UserAgent:    DefaultUserAgent,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Compose: ComposeConfig{KeywordsPerSection: DefaultKeywordsPerSection},
		Cache:   CacheConfig{MaxAge: DefaultCacheMaxAge},
	}
}

// LoadConfig reads a YAML config file over the defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = DefaultFetchTimeout
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = DefaultUserAgent
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		c.Fetch.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Compose.KeywordsPerSection <= 0 {
		c.Compose.KeywordsPerSection = DefaultKeywordsPerSection
	}
	if c.Cache.MaxAge == 0 {
		c.Cache.MaxAge = DefaultCacheMaxAge
	}
}
