package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alreinhart/TXSemiModel/internal/model"
	"github.com/alreinhart/TXSemiModel/internal/scraper"
	"github.com/alreinhart/TXSemiModel/internal/store"
)

var dryRun bool

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one scrape pass over all enabled companies",
	Long:  "Fetches every enabled career site once, extracts fields, and upserts into SQLite.",
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "scrape and extract but do not persist anything")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"companies", len(cfg.Companies),
		"min_delay", cfg.RateLimit.MinDelay.String(),
		"database", cfg.Database.Path,
	)

	var jobStore model.JobStore
	if dryRun {
		logger.Info("dry-run mode enabled, nothing will be persisted")
		jobStore = store.NewNopStore()
	} else {
		sqlStore, err := store.NewSQLiteStore(cfg.Database.Path)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		jobStore = sqlStore

		if last, err := sqlStore.LatestRun(); err == nil && last != nil {
			logger.Info("previous run",
				"finished", last.FinishedAt.Format("2006-01-02"),
				"status", last.Status,
				"jobs_found", last.JobsFound,
			)
		}
	}

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}

	scrapers := buildScrapers(cfg, jobStore, httpClient, logger)
	if len(scrapers) == 0 {
		logger.Error("no companies to scrape")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := scraper.NewRunner(scrapers, jobStore, cfg.RateLimit.MinDelay, logger)
	if err := runner.Run(ctx); err != nil {
		logger.Error("scrape run error", "error", err)
		os.Exit(1)
	}

	return nil
}
