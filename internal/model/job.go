package model

import (
	"context"
	"time"
)

// Job is the unified representation of a posting from any career platform.
type Job struct {
	Company     string          // company name
	Title       string          // job title
	Location    string          // location string
	URL         string          // canonical posting URL; upsert key in the store
	Description string          // raw description HTML as returned by the platform
	PostedRaw   string          // raw posting-date string (platform-specific)
	PostedAt    *time.Time      // parsed posting date, nil until the pipeline parses PostedRaw
	Source      string          // platform name ("workday", "oraclecloud")
	Fields      ExtractedFields // heuristic extraction output, merged in by the pipeline
}

// ExtractedFields holds the values pulled out of a job description by the
// extraction heuristics. Empty string means "not found" — absence is the
// expected common case, never an error.
type ExtractedFields struct {
	Responsibilities        string
	MinEducation            string
	MinExperience           string
	PreferredQualifications string
	SalaryRange             string

	// Requisition metadata, populated only by the Oracle Cloud adapter
	// from structured flex fields (not extracted from free text).
	JobIdentification string
	JobCategory       string
	DegreeLevel       string
	EclGtcRequired    string
}

// ScrapeRun summarizes one sequential pass over all enabled companies.
type ScrapeRun struct {
	StartedAt        time.Time
	FinishedAt       time.Time
	CompaniesScraped int
	JobsFound        int
	JobsNew          int
	JobsUpdated      int
	Status           string // "ok", "partial" (some companies failed), or "failed"
	Notes            string // per-company failure summary, empty on clean runs
}

// JobFetcher fetches job postings from a career site.
type JobFetcher interface {
	FetchJobs(ctx context.Context) ([]Job, error)
}

// JobStore persists companies, jobs, and scrape runs.
type JobStore interface {
	UpsertCompany(name, platform string) (int64, error)
	// UpsertJob inserts the job or, if a job with the same URL exists,
	// updates it in place. Returns true when a new row was created.
	UpsertJob(companyID int64, job Job) (bool, error)
	RecordRun(run ScrapeRun) error
}
