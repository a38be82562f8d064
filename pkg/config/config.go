// Package config loads and validates the YAML application configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:radar.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		Enabled        bool `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Run the aggregation loop on a timer"`
		UpdateInterval int  `yaml:"update_interval" json:"update_interval" jsonschema:"default=30,description=Aggregation interval in minutes"`
		FetchLimit     int  `yaml:"fetch_limit" json:"fetch_limit" jsonschema:"default=0,description=Per-adapter fetch limit hint (0 = adapter default)"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Sources SourcesConfig `yaml:"sources" json:"sources" jsonschema:"description=Source adapter configuration"`

	Taxonomy struct {
		Path string `yaml:"path" json:"path" jsonschema:"description=Optional taxonomy YAML override (embedded default used when empty)"`
	} `yaml:"taxonomy" json:"taxonomy" jsonschema:"description=Capability taxonomy configuration"`
}

// SourcesConfig holds per-adapter settings
type SourcesConfig struct {
	Arxiv struct {
		Enabled    bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true"`
		APIURL     string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://export.arxiv.org/api/query"`
		Categories []string      `yaml:"categories" json:"categories" jsonschema:"description=arXiv category codes to query"`
		MaxResults int           `yaml:"max_results" json:"max_results" jsonschema:"default=20"`
		Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s"`
	} `yaml:"arxiv" json:"arxiv" jsonschema:"description=Academic paper search API"`

	HackerNews struct {
		Enabled    bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true"`
		APIURL     string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://hn.algolia.com/api/v1/search"`
		QueryTerms []string      `yaml:"query_terms" json:"query_terms" jsonschema:"description=Search terms joined with OR"`
		MaxResults int           `yaml:"max_results" json:"max_results" jsonschema:"default=15"`
		Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s"`
	} `yaml:"hackernews" json:"hackernews" jsonschema:"description=Discussion-site search API"`

	Github struct {
		Enabled   bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true"`
		BaseURL   string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://github.com/trending"`
		Languages []string      `yaml:"languages" json:"languages" jsonschema:"description=Per-language trending pages, empty string means the overall page"`
		Keywords  []string      `yaml:"keywords" json:"keywords" jsonschema:"description=Repos must mention one of these"`
		PerPage   int           `yaml:"per_page" json:"per_page" jsonschema:"default=5"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s"`
	} `yaml:"github" json:"github" jsonschema:"description=Trending repositories HTML page"`

	ReleaseNotes RSSGroup `yaml:"release_notes" json:"release_notes" jsonschema:"description=Vendor release note feeds"`
	VCNews       RSSGroup `yaml:"vc_news" json:"vc_news" jsonschema:"description=VC and industry commentary feeds"`
}

// RSSGroup is one named set of RSS/Atom feeds polled by a single adapter
type RSSGroup struct {
	Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s"`
	Feeds   []FeedConfig  `yaml:"feeds" json:"feeds"`
}

// FeedConfig is one configured RSS/Atom endpoint
type FeedConfig struct {
	Name   string  `yaml:"name" json:"name"`
	URL    string  `yaml:"url" json:"url"`
	Type   string  `yaml:"type" json:"type" jsonschema:"description=Source type: release_notes | vc_news | industry_blog"`
	Weight float64 `yaml:"weight" json:"weight" jsonschema:"description=Baseline relevance score in (0 - 1]"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	// enabled flags default to true, yaml overrides only the keys present
	var cfg Config
	setEnabledDefaults(&cfg)
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is given
func Default() *Config {
	cfg := &Config{}
	setEnabledDefaults(cfg)
	setDefaults(cfg)
	return cfg
}

// setEnabledDefaults turns the scheduler and all source adapters on. Called
// before yaml unmarshal so an omitted "enabled" key means on, not off.
func setEnabledDefaults(cfg *Config) {
	cfg.Schedule.Enabled = true
	cfg.Sources.Arxiv.Enabled = true
	cfg.Sources.HackerNews.Enabled = true
	cfg.Sources.Github.Enabled = true
	cfg.Sources.ReleaseNotes.Enabled = true
	cfg.Sources.VCNews.Enabled = true
}

func setDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:radar.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Schedule.UpdateInterval == 0 {
		cfg.Schedule.UpdateInterval = 30
	}

	setSourceDefaults(&cfg.Sources)
}

func setSourceDefaults(src *SourcesConfig) {
	if src.Arxiv.APIURL == "" {
		src.Arxiv.APIURL = "https://export.arxiv.org/api/query"
	}
	if len(src.Arxiv.Categories) == 0 {
		src.Arxiv.Categories = []string{"cs.AI", "cs.LG", "cs.CL", "cs.CV"}
	}
	if src.Arxiv.MaxResults == 0 {
		src.Arxiv.MaxResults = 20
	}
	if src.Arxiv.Timeout == 0 {
		src.Arxiv.Timeout = 15 * time.Second
	}

	if src.HackerNews.APIURL == "" {
		src.HackerNews.APIURL = "https://hn.algolia.com/api/v1/search"
	}
	if len(src.HackerNews.QueryTerms) == 0 {
		src.HackerNews.QueryTerms = []string{"openai", "anthropic", "llm"}
	}
	if src.HackerNews.MaxResults == 0 {
		src.HackerNews.MaxResults = 15
	}
	if src.HackerNews.Timeout == 0 {
		src.HackerNews.Timeout = 10 * time.Second
	}

	if src.Github.BaseURL == "" {
		src.Github.BaseURL = "https://github.com/trending"
	}
	if src.Github.Languages == nil {
		src.Github.Languages = []string{"python", "jupyter-notebook", "rust", ""}
	}
	if len(src.Github.Keywords) == 0 {
		src.Github.Keywords = []string{"llm", "gpt", "ai", "ml", "model", "agent", "claude", "openai"}
	}
	if src.Github.PerPage == 0 {
		src.Github.PerPage = 5
	}
	if src.Github.Timeout == 0 {
		src.Github.Timeout = 15 * time.Second
	}

	if src.ReleaseNotes.Timeout == 0 {
		src.ReleaseNotes.Timeout = 10 * time.Second
	}
	if len(src.ReleaseNotes.Feeds) == 0 {
		src.ReleaseNotes.Feeds = []FeedConfig{
			{Name: "Anthropic News", URL: "https://www.anthropic.com/rss.xml", Type: "release_notes", Weight: 0.9},
			{Name: "OpenAI Blog", URL: "https://openai.com/blog/rss.xml", Type: "release_notes", Weight: 0.9},
			{Name: "Google AI Blog", URL: "https://blog.research.google/feeds/posts/default", Type: "release_notes", Weight: 0.85},
			{Name: "Hugging Face Blog", URL: "https://huggingface.co/blog/feed.xml", Type: "release_notes", Weight: 0.8},
			{Name: "DeepMind Blog", URL: "https://deepmind.google/blog/rss.xml", Type: "release_notes", Weight: 0.85},
		}
	}

	if src.VCNews.Timeout == 0 {
		src.VCNews.Timeout = 10 * time.Second
	}
	if len(src.VCNews.Feeds) == 0 {
		src.VCNews.Feeds = []FeedConfig{
			{Name: "a16z AI", URL: "https://a16z.com/tag/ai/feed/", Type: "vc_news", Weight: 0.75},
			{Name: "Sequoia Capital", URL: "https://www.sequoiacap.com/rss/", Type: "vc_news", Weight: 0.75},
			{Name: "The Batch (deeplearning.ai)", URL: "https://www.deeplearning.ai/the-batch/feed/", Type: "industry_blog", Weight: 0.7},
			{Name: "Import AI", URL: "https://importai.substack.com/feed", Type: "industry_blog", Weight: 0.7},
			{Name: "AI Supremacy", URL: "https://aisupremacy.substack.com/feed", Type: "industry_blog", Weight: 0.7},
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Schedule.UpdateInterval < 1 {
		return fmt.Errorf("schedule.update_interval must be at least 1 minute")
	}
	if cfg.Schedule.FetchLimit < 0 {
		return fmt.Errorf("schedule.fetch_limit must be non-negative")
	}

	for _, group := range []struct {
		name  string
		group RSSGroup
	}{{"release_notes", cfg.Sources.ReleaseNotes}, {"vc_news", cfg.Sources.VCNews}} {
		for _, f := range group.group.Feeds {
			if f.URL == "" {
				return fmt.Errorf("sources.%s: feed %q has no url", group.name, f.Name)
			}
			if f.Weight <= 0 || f.Weight > 1 {
				return fmt.Errorf("sources.%s: feed %q weight must be in (0,1]", group.name, f.Name)
			}
			switch f.Type {
			case "release_notes", "vc_news", "industry_blog":
			default:
				return fmt.Errorf("sources.%s: feed %q has unknown type %q", group.name, f.Name, f.Type)
			}
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
