package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"golden_pages/internal/app"
	"golden_pages/internal/config"
)

type CLI struct {
	Config   string `help:"Path to YAML config file. Built-in defaults are used when empty." short:"c" type:"path"`
	MaxPages int    `help:"Override site.max_pages." short:"p"`
	Engine   string `help:"Override fetch.engine (http or colly)."`
	CSV      string `help:"Also write results to this CSV file." type:"path"`
	Append   bool   `help:"Append to the CSV file instead of overwriting it."`
	LogLevel string `help:"Override log_level (debug, info, warn, error)."`
}

func loadConfig(cli CLI) (*config.ScraperConfig, error) {
	cfg := config.Default()
	if cli.Config != "" {
		loaded, err := config.LoadConfig(cli.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cli.MaxPages != 0 {
		cfg.Site.MaxPages = cli.MaxPages
	}
	if cli.Engine != "" {
		cfg.Fetch.Engine = cli.Engine
	}
	if cli.CSV != "" {
		cfg.Output.CSVFile = cli.CSV
	}
	if cli.Append {
		cfg.Output.CSVMode = config.CSVModeAppend
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	return cfg, cfg.Validate()
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("golden_pages"),
		kong.Description("Collect business contact details from a paginated directory."),
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	cfg, err := loadConfig(cli)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	scraper, err := app.NewScraperApp(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create scraper", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := scraper.Run(ctx)
	if err != nil {
		if app.IsInterrupted(err) {
			logger.Warn("interrupted, partial results saved", "records", summary.Records)
			return
		}
		logger.Error("scraper failed", "err", err)
		os.Exit(1)
	}

	logger.Info("scraper successfully run", "records", summary.Records)
}
