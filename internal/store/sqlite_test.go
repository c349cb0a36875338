package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alreinhart/TXSemiModel/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testJob(url string) model.Job {
	posted := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	return model.Job{
		Company:  "Texas Instruments",
		Title:    "Analog Design Engineer",
		Location: "Dallas, TX",
		URL:      url,
		PostedAt: &posted,
		Source:   "oraclecloud",
		Fields: model.ExtractedFields{
			Responsibilities:  "Design circuits\nRun tests",
			MinEducation:      "Bachelor's degree in Electrical Engineering",
			SalaryRange:       "$110,000 - $150,000",
			JobIdentification: "26000123",
			EclGtcRequired:    "Yes",
		},
	}
}

func TestUpsertCompanyIdempotent(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.UpsertCompany("Texas Instruments", "oraclecloud")
	if err != nil {
		t.Fatalf("first UpsertCompany: %v", err)
	}
	id2, err := s.UpsertCompany("Texas Instruments", "oraclecloud")
	if err != nil {
		t.Fatalf("second UpsertCompany: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected stable company ID, got %d then %d", id1, id2)
	}
}

func TestUpsertJobCreatesThenUpdates(t *testing.T) {
	s := newTestStore(t)
	companyID, err := s.UpsertCompany("Texas Instruments", "oraclecloud")
	if err != nil {
		t.Fatalf("UpsertCompany: %v", err)
	}

	job := testJob("https://example.com/job/26000123")
	created, err := s.UpsertJob(companyID, job)
	if err != nil {
		t.Fatalf("first UpsertJob: %v", err)
	}
	if !created {
		t.Error("expected created=true on first upsert")
	}

	job.Title = "Senior Analog Design Engineer"
	job.Fields.SalaryRange = "$130,000 - $170,000"
	created, err = s.UpsertJob(companyID, job)
	if err != nil {
		t.Fatalf("second UpsertJob: %v", err)
	}
	if created {
		t.Error("expected created=false on re-upsert of the same URL")
	}

	jobs, err := s.ListJobs()
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job after upsert, got %d", len(jobs))
	}
	got := jobs[0]
	if got.Title != "Senior Analog Design Engineer" {
		t.Errorf("title not updated: %s", got.Title)
	}
	if got.Fields.SalaryRange != "$130,000 - $170,000" {
		t.Errorf("salary not updated: %s", got.Fields.SalaryRange)
	}
	if got.Fields.EclGtcRequired != "Yes" {
		t.Errorf("EclGtcRequired lost on update: %q", got.Fields.EclGtcRequired)
	}
}

func TestListJobsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	companyID, err := s.UpsertCompany("NXP", "workday")
	if err != nil {
		t.Fatalf("UpsertCompany: %v", err)
	}

	job := testJob("https://example.com/job/1")
	if _, err := s.UpsertJob(companyID, job); err != nil {
		t.Fatalf("UpsertJob: %v", err)
	}

	jobs, err := s.ListJobs()
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}

	got := jobs[0]
	if got.Company != "NXP" || got.Platform != "workday" {
		t.Errorf("company join wrong: %s/%s", got.Company, got.Platform)
	}
	if got.Fields.Responsibilities != "Design circuits\nRun tests" {
		t.Errorf("responsibilities round-trip: %q", got.Fields.Responsibilities)
	}
	if got.PostedDate == nil {
		t.Fatal("expected PostedDate to round-trip")
	}
	if got.PostedDate.Format("2006-01-02") != "2026-03-15" {
		t.Errorf("unexpected PostedDate %v", got.PostedDate)
	}
	// Absent fields come back empty, not as a sentinel.
	if got.Fields.MinExperience != "" {
		t.Errorf("expected absent MinExperience, got %q", got.Fields.MinExperience)
	}
}

func TestRecordAndLatestRun(t *testing.T) {
	s := newTestStore(t)

	if run, err := s.LatestRun(); err != nil || run != nil {
		t.Fatalf("expected no runs yet, got %v, %v", run, err)
	}

	started := time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC)
	err := s.RecordRun(model.ScrapeRun{
		StartedAt:        started,
		FinishedAt:       started.Add(40 * time.Minute),
		CompaniesScraped: 5,
		JobsFound:        412,
		JobsNew:          37,
		JobsUpdated:      375,
		Status:           "ok",
	})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	run, err := s.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if run == nil {
		t.Fatal("expected a run")
	}
	if run.JobsFound != 412 || run.JobsNew != 37 || run.Status != "ok" {
		t.Errorf("unexpected run %+v", run)
	}
}
