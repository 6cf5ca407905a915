// Package config loads the application configuration: feed sources, storage
// location, and the scoring tables and thresholds the pipeline runs with.
//
// Configuration is read once at startup and treated as immutable from then
// on. Malformed configuration is a fatal operator error and surfaces before
// any batch is processed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hellothere012/ghostbrief/internal/pipeline"
	"github.com/hellothere012/ghostbrief/internal/scoring"
)

const configPathEnv = "GHOSTBRIEF_CONFIG"

// SourceConfig describes one feed to ingest.
type SourceConfig struct {
	Name        string  `yaml:"name"`
	URL         string  `yaml:"url"`
	Domain      string  `yaml:"domain"`
	Credibility float64 `yaml:"credibility"` // 0-100, 0 = derive from tier
	Category    string  `yaml:"category"`
}

// Config is the full application configuration.
type Config struct {
	DBPath       string         `yaml:"db_path"`
	FetchTimeout time.Duration  `yaml:"fetch_timeout"`
	Sources      []SourceConfig `yaml:"sources"`

	Thresholds pipeline.Thresholds `yaml:"thresholds"`
	Tables     scoring.Tables      `yaml:"tables"`
}

// Default returns the built-in configuration: canonical thresholds, default
// scoring tables, a small wire-service source set, and storage under the
// user's home directory.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DBPath:       filepath.Join(home, ".ghostbrief", "ghostbrief.db"),
		FetchTimeout: 30 * time.Second,
		Sources: []SourceConfig{
			{Name: "Reuters World", URL: "https://feeds.reuters.com/Reuters/worldNews", Domain: "reuters.com", Credibility: 95, Category: "wire"},
			{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Domain: "bbc.com", Credibility: 90, Category: "wire"},
			{Name: "Defense News", URL: "https://www.defensenews.com/arc/outboundfeeds/rss/", Domain: "defensenews.com", Credibility: 85, Category: "defense"},
			{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Domain: "aljazeera.com", Credibility: 70, Category: "international"},
		},
		Thresholds: pipeline.DefaultThresholds(),
		Tables:     scoring.DefaultTables(),
	}
}

// Load reads YAML configuration from path, or from $GHOSTBRIEF_CONFIG when
// path is empty, over the defaults. A missing file yields the defaults; a
// present but malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for operator mistakes.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is empty")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %v", c.FetchTimeout)
	}
	for _, src := range c.Sources {
		if src.Name == "" || src.URL == "" {
			return fmt.Errorf("source with empty name or url: %+v", src)
		}
		if src.Credibility < 0 || src.Credibility > 100 {
			return fmt.Errorf("source %s credibility %v out of [0,100]", src.Name, src.Credibility)
		}
	}
	return c.Tables.Validate()
}
