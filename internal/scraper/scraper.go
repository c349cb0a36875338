// Package scraper owns the scrape pipeline: fetch postings from a career
// site, run extraction over the raw descriptions, and upsert into the store.
package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alreinhart/TXSemiModel/internal/extract"
	"github.com/alreinhart/TXSemiModel/internal/model"
)

// Stats summarizes one company scrape.
type Stats struct {
	Fetched int
	New     int
	Updated int
}

// CompanyScraper owns the full pipeline for a single company:
// fetch → parse date → extract fields → upsert.
type CompanyScraper struct {
	Name      string
	Platform  string
	fetcher   model.JobFetcher
	extractor *extract.Extractor
	store     model.JobStore
	logger    *slog.Logger
}

// NewCompanyScraper creates a scraper wired with all its dependencies.
func NewCompanyScraper(
	name string,
	platform string,
	fetcher model.JobFetcher,
	extractor *extract.Extractor,
	store model.JobStore,
	logger *slog.Logger,
) *CompanyScraper {
	return &CompanyScraper{
		Name:      name,
		Platform:  platform,
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		logger:    logger,
	}
}

// Scrape runs one scrape cycle for the company and reports counts. A fetch
// failure aborts the company; a store failure on a single job does too, so a
// partial write never goes unnoticed.
func (s *CompanyScraper) Scrape(ctx context.Context) (Stats, error) {
	var stats Stats

	jobs, err := s.fetcher.FetchJobs(ctx)
	if err != nil {
		return stats, fmt.Errorf("scraping %s: %w", s.Name, err)
	}
	stats.Fetched = len(jobs)

	companyID, err := s.store.UpsertCompany(s.Name, s.Platform)
	if err != nil {
		return stats, fmt.Errorf("scraping %s: upserting company: %w", s.Name, err)
	}

	for _, job := range jobs {
		// Empty raw dates stay NULL; anything else gets at worst the
		// today fallback.
		if t, _ := extract.ParseDate(job.PostedRaw); !t.IsZero() {
			job.PostedAt = &t
		}

		// Adapters only leave platform metadata in Fields; the
		// extraction targets are filled here from the description.
		extracted := s.extractor.Extract(job.Description)
		job.Fields.Responsibilities = extracted.Responsibilities
		job.Fields.MinEducation = extracted.MinEducation
		job.Fields.MinExperience = extracted.MinExperience
		job.Fields.PreferredQualifications = extracted.PreferredQualifications
		job.Fields.SalaryRange = extracted.SalaryRange

		created, err := s.store.UpsertJob(companyID, job)
		if err != nil {
			return stats, fmt.Errorf("scraping %s: upserting %s: %w", s.Name, job.URL, err)
		}
		if created {
			stats.New++
		} else {
			stats.Updated++
		}
	}

	s.logger.Info("scraped company",
		"company", s.Name,
		"fetched", stats.Fetched,
		"new", stats.New,
		"updated", stats.Updated,
	)

	return stats, nil
}
