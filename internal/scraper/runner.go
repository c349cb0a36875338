package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alreinhart/TXSemiModel/internal/model"
)

// Run statuses recorded in scrape_runs.
const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// Runner drives one scrape pass over all companies sequentially, with a
// pause between them, and records the run.
type Runner struct {
	scrapers []*CompanyScraper
	store    model.JobStore
	pause    time.Duration
	logger   *slog.Logger
}

// NewRunner creates a runner over the given scrapers.
func NewRunner(scrapers []*CompanyScraper, store model.JobStore, pause time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		scrapers: scrapers,
		store:    store,
		pause:    pause,
		logger:   logger,
	}
}

// Run scrapes every company once. A failing company is logged and skipped
// rather than aborting the pass; the recorded run says "partial" when some
// companies failed and "failed" when all did. Cancellation stops between
// companies.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("starting scrape run", "companies", len(r.scrapers))

	run := model.ScrapeRun{StartedAt: time.Now().UTC()}
	failed := 0

	for i, s := range r.scrapers {
		if ctx.Err() != nil {
			break
		}

		stats, err := s.Scrape(ctx)
		if err != nil {
			failed++
			r.logger.Error("company scrape failed",
				"company", s.Name,
				"error", err,
			)
		} else {
			run.CompaniesScraped++
		}
		run.JobsFound += stats.Fetched
		run.JobsNew += stats.New
		run.JobsUpdated += stats.Updated

		if i < len(r.scrapers)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(r.pause):
			}
		}
	}

	run.FinishedAt = time.Now().UTC()
	switch {
	case ctx.Err() != nil:
		run.Status = StatusPartial
		run.Notes = "run cancelled"
		if run.CompaniesScraped == 0 {
			run.Status = StatusFailed
		}
	case failed == 0:
		run.Status = StatusOK
	case run.CompaniesScraped > 0:
		run.Status = StatusPartial
		run.Notes = fmt.Sprintf("%d of %d companies failed", failed, len(r.scrapers))
	default:
		run.Status = StatusFailed
		run.Notes = "no company scraped successfully"
	}

	if err := r.store.RecordRun(run); err != nil {
		return fmt.Errorf("recording scrape run: %w", err)
	}

	r.logger.Info("scrape run finished",
		"status", run.Status,
		"companies", run.CompaniesScraped,
		"found", run.JobsFound,
		"new", run.JobsNew,
		"updated", run.JobsUpdated,
	)

	if run.Status == StatusFailed {
		return fmt.Errorf("scrape run failed: %s", run.Notes)
	}
	return nil
}
