package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/radar/pkg/aggregator"
	"github.com/umputun/radar/pkg/config"
	"github.com/umputun/radar/pkg/domain"
	"github.com/umputun/radar/pkg/repository"
	"github.com/umputun/radar/pkg/scheduler"
	"github.com/umputun/radar/pkg/source"
	"github.com/umputun/radar/pkg/tagger"
	"github.com/umputun/radar/pkg/taxonomy"
	"github.com/umputun/radar/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Once   bool   `long:"once" description:"run one aggregation pass and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = opts.NoColor
	setupLog(opts.Debug)

	log.Printf("[INFO] starting radar version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] radar failed: %v", err)
		cancel()
		os.Exit(1)
	}

	cancel()
	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("open repositories: %w", err)
	}
	defer repos.Close()

	entries, err := loadTaxonomy(cfg.Taxonomy.Path)
	if err != nil {
		return fmt.Errorf("load taxonomy: %w", err)
	}
	if err := repos.Taxonomy.Seed(ctx, entries); err != nil {
		return fmt.Errorf("seed taxonomy: %w", err)
	}
	log.Printf("[INFO] taxonomy seeded, %d capabilities", len(entries))

	agg := aggregator.New(aggregator.Params{
		Adapters:   buildAdapters(cfg),
		Tagger:     tagger.New(entries),
		Items:      repos.Item,
		Tags:       repos.Tag,
		Matches:    repos.Match,
		FetchLimit: cfg.Schedule.FetchLimit,
	})

	if opts.Once {
		result := agg.Run(ctx)
		log.Printf("[INFO] single run finished: %s", result)
		if !result.OK() {
			return fmt.Errorf("run completed with %d errors", len(result.Errors))
		}
		return nil
	}

	if cfg.Schedule.Enabled {
		sched := scheduler.New(agg, time.Duration(cfg.Schedule.UpdateInterval)*time.Minute)
		sched.Start(ctx)
		defer sched.Stop()
	}

	srv := server.New(cfg, repos.Item, agg, revision, opts.Debug)
	return srv.Run(ctx)
}

// loadConfig reads the config file; a missing file falls back to built-in
// defaults unless the path was given explicitly
func loadConfig(opts Opts) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		log.Printf("[WARN] config file %s not found, using defaults", opts.Config)
		cfg = config.Default()
	}

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	return cfg, nil
}

// loadTaxonomy uses the embedded taxonomy unless an override path is set
func loadTaxonomy(path string) ([]domain.CapabilityEntry, error) {
	if path != "" {
		return taxonomy.LoadFile(path)
	}
	return taxonomy.Load()
}

// buildAdapters assembles source adapters for all enabled sources
func buildAdapters(cfg *config.Config) []source.Adapter {
	var adapters []source.Adapter

	if cfg.Sources.Arxiv.Enabled {
		adapters = append(adapters, source.NewArxiv(source.ArxivConfig{
			APIURL:     cfg.Sources.Arxiv.APIURL,
			Categories: cfg.Sources.Arxiv.Categories,
			MaxResults: cfg.Sources.Arxiv.MaxResults,
			Timeout:    cfg.Sources.Arxiv.Timeout,
		}))
	}

	if cfg.Sources.HackerNews.Enabled {
		adapters = append(adapters, source.NewHackerNews(source.HackerNewsConfig{
			APIURL:     cfg.Sources.HackerNews.APIURL,
			QueryTerms: cfg.Sources.HackerNews.QueryTerms,
			MaxResults: cfg.Sources.HackerNews.MaxResults,
			Timeout:    cfg.Sources.HackerNews.Timeout,
		}))
	}

	if cfg.Sources.Github.Enabled {
		adapters = append(adapters, source.NewGithub(source.GithubConfig{
			BaseURL:   cfg.Sources.Github.BaseURL,
			Languages: cfg.Sources.Github.Languages,
			Keywords:  cfg.Sources.Github.Keywords,
			PerPage:   cfg.Sources.Github.PerPage,
			Timeout:   cfg.Sources.Github.Timeout,
		}))
	}

	if cfg.Sources.ReleaseNotes.Enabled && len(cfg.Sources.ReleaseNotes.Feeds) > 0 {
		adapters = append(adapters, source.NewRSS(source.RSSConfig{
			Name:    "release-notes",
			Feeds:   toFeeds(cfg.Sources.ReleaseNotes.Feeds),
			Timeout: cfg.Sources.ReleaseNotes.Timeout,
		}))
	}

	if cfg.Sources.VCNews.Enabled && len(cfg.Sources.VCNews.Feeds) > 0 {
		adapters = append(adapters, source.NewRSS(source.RSSConfig{
			Name:    "vc-news",
			Feeds:   toFeeds(cfg.Sources.VCNews.Feeds),
			Timeout: cfg.Sources.VCNews.Timeout,
		}))
	}

	return adapters
}

func toFeeds(feeds []config.FeedConfig) []source.Feed {
	out := make([]source.Feed, len(feeds))
	for i, f := range feeds {
		out[i] = source.Feed{Name: f.Name, URL: f.URL, Type: domain.SourceType(f.Type), Weight: f.Weight}
	}
	return out
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
