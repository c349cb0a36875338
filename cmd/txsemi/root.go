package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/alreinhart/TXSemiModel/internal/adapter"
	"github.com/alreinhart/TXSemiModel/internal/config"
	"github.com/alreinhart/TXSemiModel/internal/extract"
	"github.com/alreinhart/TXSemiModel/internal/model"
	"github.com/alreinhart/TXSemiModel/internal/ratelimit"
	"github.com/alreinhart/TXSemiModel/internal/retry"
	"github.com/alreinhart/TXSemiModel/internal/scraper"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "txsemi",
	Short: "Quarterly scraper for semiconductor-industry job postings",
	Long: "txsemi collects job postings from Workday and Oracle Cloud career sites,\n" +
		"extracts structured fields from the raw descriptions, and stores them in SQLite.",
	// Default to `scrape` so the quarterly cron can invoke the binary directly.
	RunE: runScrape,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: TXSEMI_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > TXSEMI_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("TXSEMI_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func createFetcher(company config.CompanyConfig, userAgent string, httpClient *http.Client) model.JobFetcher {
	switch company.Platform {
	case config.PlatformWorkday:
		return adapter.NewWorkdayAdapter(company.WorkdayURL, company.Name, company.Keywords, userAgent, httpClient)
	case config.PlatformOracleCloud:
		return adapter.NewOracleCloudAdapter(company.SiteURL, company.SiteNumber, company.Name, company.Keywords, userAgent, httpClient)
	default:
		// Unreachable: config validation rejects unknown platforms.
		return nil
	}
}

func buildScrapers(cfg *config.Config, jobStore model.JobStore, httpClient *http.Client, logger *slog.Logger) []*scraper.CompanyScraper {
	extractor := extract.NewExtractor(cfg.Extraction)

	// Companies on the same platform share a limiter so the politeness
	// delay holds across them.
	limiters := make(map[string]*ratelimit.PlatformRateLimiter)
	limiterFor := func(platform string) *ratelimit.PlatformRateLimiter {
		if l, ok := limiters[platform]; ok {
			return l
		}
		l := ratelimit.NewPlatformRateLimiter(cfg.RateLimit.MinDelayFor(platform))
		limiters[platform] = l
		return l
	}

	var scrapers []*scraper.CompanyScraper
	for _, company := range cfg.Companies {
		if !company.Enabled {
			continue
		}

		fetcher := createFetcher(company, cfg.HTTP.UserAgent, httpClient)
		fetcher = ratelimit.NewRateLimitedFetcher(fetcher, limiterFor(company.Platform), company.Platform)
		fetcher = retry.NewRetryFetcher(fetcher, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger)

		s := scraper.NewCompanyScraper(company.Name, company.Platform, fetcher, extractor, jobStore, logger)
		scrapers = append(scrapers, s)
		logger.Info("registered company", "name", company.Name, "platform", company.Platform)
	}
	return scrapers
}
