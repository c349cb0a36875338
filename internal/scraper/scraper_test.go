package scraper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/alreinhart/TXSemiModel/internal/extract"
	"github.com/alreinhart/TXSemiModel/internal/model"
)

// --- Mock/Fake Implementations ---

// MockFetcher returns a canned slice of jobs or an error.
type MockFetcher struct {
	Jobs []model.Job
	Err  error
}

func (m *MockFetcher) FetchJobs(_ context.Context) ([]model.Job, error) {
	return m.Jobs, m.Err
}

// InMemoryStore records upserts keyed by job URL.
type InMemoryStore struct {
	companies map[string]int64
	jobs      map[string]model.Job
	runs      []model.ScrapeRun
	UpsertErr error
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		companies: make(map[string]int64),
		jobs:      make(map[string]model.Job),
	}
}

func (s *InMemoryStore) UpsertCompany(name, platform string) (int64, error) {
	if id, ok := s.companies[name]; ok {
		return id, nil
	}
	id := int64(len(s.companies) + 1)
	s.companies[name] = id
	return id, nil
}

func (s *InMemoryStore) UpsertJob(_ int64, job model.Job) (bool, error) {
	if s.UpsertErr != nil {
		return false, s.UpsertErr
	}
	_, existed := s.jobs[job.URL]
	s.jobs[job.URL] = job
	return !existed, nil
}

func (s *InMemoryStore) RecordRun(run model.ScrapeRun) error {
	s.runs = append(s.runs, run)
	return nil
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newScraper(name string, fetcher model.JobFetcher, store model.JobStore) *CompanyScraper {
	return NewCompanyScraper(
		name,
		"workday",
		fetcher,
		extract.NewExtractor(extract.Config{}),
		store,
		discardLogger(),
	)
}

const sampleDescription = `
<p><strong>Key Responsibilities:</strong></p>
<ul><li>Design circuits</li><li>Run tests</li></ul>
<p>Minimum Education: Bachelor's degree in Electrical Engineering</p>
`

// --- Tests ---

func TestScrape_ExtractsAndUpserts(t *testing.T) {
	store := NewInMemoryStore()
	fetcher := &MockFetcher{Jobs: []model.Job{
		{
			Company:     "testco",
			Title:       "Analog Design Engineer",
			URL:         "https://example.com/job/1",
			Description: sampleDescription,
			PostedRaw:   "2026-03-15",
		},
	}}

	stats, err := newScraper("testco", fetcher, store).Scrape(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Fetched != 1 || stats.New != 1 || stats.Updated != 0 {
		t.Errorf("stats = %+v, want 1 fetched, 1 new", stats)
	}

	stored, ok := store.jobs["https://example.com/job/1"]
	if !ok {
		t.Fatal("job not upserted")
	}
	if stored.Fields.Responsibilities != "Design circuits\nRun tests" {
		t.Errorf("Responsibilities = %q", stored.Fields.Responsibilities)
	}
	if !strings.HasPrefix(stored.Fields.MinEducation, "Bachelor's degree") {
		t.Errorf("MinEducation = %q", stored.Fields.MinEducation)
	}
	if stored.PostedAt == nil || stored.PostedAt.Format("2006-01-02") != "2026-03-15" {
		t.Errorf("PostedAt = %v, want 2026-03-15", stored.PostedAt)
	}
}

func TestScrape_RepeatIsUpdate(t *testing.T) {
	store := NewInMemoryStore()
	fetcher := &MockFetcher{Jobs: []model.Job{
		{Company: "testco", Title: "Test Engineer", URL: "https://example.com/job/1"},
	}}
	s := newScraper("testco", fetcher, store)

	if _, err := s.Scrape(context.Background()); err != nil {
		t.Fatalf("first scrape: %v", err)
	}
	stats, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("second scrape: %v", err)
	}
	if stats.New != 0 || stats.Updated != 1 {
		t.Errorf("stats = %+v, want 0 new, 1 updated", stats)
	}
}

func TestScrape_PreservesPlatformMetadata(t *testing.T) {
	store := NewInMemoryStore()
	fetcher := &MockFetcher{Jobs: []model.Job{
		{
			Company:     "testco",
			Title:       "Test Engineer",
			URL:         "https://example.com/job/1",
			Description: sampleDescription,
			Fields: model.ExtractedFields{
				JobIdentification: "26000123",
				DegreeLevel:       "Bachelor's Degree",
				EclGtcRequired:    "Yes",
			},
		},
	}}

	if _, err := newScraper("testco", fetcher, store).Scrape(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := store.jobs["https://example.com/job/1"]
	if stored.Fields.JobIdentification != "26000123" {
		t.Errorf("JobIdentification lost: %q", stored.Fields.JobIdentification)
	}
	if stored.Fields.EclGtcRequired != "Yes" {
		t.Errorf("EclGtcRequired lost: %q", stored.Fields.EclGtcRequired)
	}
	if stored.Fields.Responsibilities == "" {
		t.Error("extraction should still fill description fields")
	}
}

func TestScrape_EmptyDateStaysNil(t *testing.T) {
	store := NewInMemoryStore()
	fetcher := &MockFetcher{Jobs: []model.Job{
		{Company: "testco", Title: "Test Engineer", URL: "https://example.com/job/1", PostedRaw: ""},
	}}

	if _, err := newScraper("testco", fetcher, store).Scrape(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.jobs["https://example.com/job/1"].PostedAt != nil {
		t.Error("empty raw date should leave PostedAt nil")
	}
}

func TestScrape_FetchError(t *testing.T) {
	store := NewInMemoryStore()
	s := newScraper("failco", &MockFetcher{Err: errors.New("network down")}, store)

	if _, err := s.Scrape(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(store.jobs) != 0 {
		t.Error("nothing should be upserted on fetch error")
	}
}

func TestScrape_StoreError(t *testing.T) {
	store := NewInMemoryStore()
	store.UpsertErr = errors.New("disk full")
	fetcher := &MockFetcher{Jobs: []model.Job{
		{Company: "testco", Title: "Test Engineer", URL: "https://example.com/job/1"},
	}}

	if _, err := newScraper("testco", fetcher, store).Scrape(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
