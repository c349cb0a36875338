package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alreinhart/TXSemiModel/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore persists companies, jobs, and scrape runs in a SQLite
// database. Jobs are keyed on URL: re-scraping a posting updates the
// existing row instead of duplicating it.
type SQLiteStore struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		name     TEXT NOT NULL UNIQUE,
		platform TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id                       INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id               INTEGER NOT NULL REFERENCES companies(id),
		title                    TEXT NOT NULL,
		url                      TEXT NOT NULL UNIQUE,
		location                 TEXT,
		posted_date              DATE,
		responsibilities         TEXT,
		min_education            TEXT,
		min_experience           TEXT,
		preferred_qualifications TEXT,
		salary_range             TEXT,
		job_identification       TEXT,
		job_category             TEXT,
		degree_level             TEXT,
		ecl_gtc_required         TEXT,
		first_seen               DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_seen                DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS scrape_runs (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at        DATETIME NOT NULL,
		finished_at       DATETIME NOT NULL,
		companies_scraped INTEGER NOT NULL,
		jobs_found        INTEGER NOT NULL,
		jobs_new          INTEGER NOT NULL,
		jobs_updated      INTEGER NOT NULL,
		status            TEXT NOT NULL,
		notes             TEXT
	)`,
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// UpsertCompany inserts the company if unknown and returns its row ID.
func (s *SQLiteStore) UpsertCompany(name, platform string) (int64, error) {
	_, err := s.db.Exec(
		`INSERT INTO companies (name, platform) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET platform = excluded.platform`,
		name, platform,
	)
	if err != nil {
		return 0, fmt.Errorf("upserting company %s: %w", name, err)
	}

	var id int64
	if err := s.db.QueryRow("SELECT id FROM companies WHERE name = ?", name).Scan(&id); err != nil {
		return 0, fmt.Errorf("looking up company %s: %w", name, err)
	}
	return id, nil
}

// UpsertJob creates or updates the job row keyed on its URL. Returns true
// when a new row was created. Empty extracted fields are stored as NULL.
func (s *SQLiteStore) UpsertJob(companyID int64, job model.Job) (bool, error) {
	var existingID int64
	err := s.db.QueryRow("SELECT id FROM jobs WHERE url = ?", job.URL).Scan(&existingID)

	f := job.Fields
	args := []any{
		companyID, job.Title, nullable(job.Location), nullableDate(job.PostedAt),
		nullable(f.Responsibilities), nullable(f.MinEducation), nullable(f.MinExperience),
		nullable(f.PreferredQualifications), nullable(f.SalaryRange),
		nullable(f.JobIdentification), nullable(f.JobCategory),
		nullable(f.DegreeLevel), nullable(f.EclGtcRequired),
	}

	switch {
	case err == sql.ErrNoRows:
		_, err := s.db.Exec(
			`INSERT INTO jobs (
				company_id, title, location, posted_date,
				responsibilities, min_education, min_experience,
				preferred_qualifications, salary_range,
				job_identification, job_category, degree_level, ecl_gtc_required,
				url
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			append(args, job.URL)...,
		)
		if err != nil {
			return false, fmt.Errorf("inserting job %s: %w", job.URL, err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("looking up job %s: %w", job.URL, err)
	default:
		_, err := s.db.Exec(
			`UPDATE jobs SET
				company_id = ?, title = ?, location = ?, posted_date = ?,
				responsibilities = ?, min_education = ?, min_experience = ?,
				preferred_qualifications = ?, salary_range = ?,
				job_identification = ?, job_category = ?, degree_level = ?, ecl_gtc_required = ?,
				last_seen = CURRENT_TIMESTAMP
			WHERE id = ?`,
			append(args, existingID)...,
		)
		if err != nil {
			return false, fmt.Errorf("updating job %s: %w", job.URL, err)
		}
		return false, nil
	}
}

// RecordRun appends one scrape-run summary row.
func (s *SQLiteStore) RecordRun(run model.ScrapeRun) error {
	_, err := s.db.Exec(
		`INSERT INTO scrape_runs (
			started_at, finished_at, companies_scraped,
			jobs_found, jobs_new, jobs_updated, status, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt, run.FinishedAt, run.CompaniesScraped,
		run.JobsFound, run.JobsNew, run.JobsUpdated, run.Status, nullable(run.Notes),
	)
	if err != nil {
		return fmt.Errorf("recording scrape run: %w", err)
	}
	return nil
}

// StoredJob is a persisted job joined with its company, as read back for
// export and review.
type StoredJob struct {
	ID         int64
	Company    string
	Platform   string
	Title      string
	URL        string
	Location   string
	PostedDate *time.Time
	Fields     model.ExtractedFields
	FirstSeen  time.Time
	LastSeen   time.Time
}

// ListJobs returns all stored jobs ordered by company then title.
func (s *SQLiteStore) ListJobs() ([]StoredJob, error) {
	rows, err := s.db.Query(
		`SELECT j.id, c.name, c.platform, j.title, j.url,
			COALESCE(j.location, ''), j.posted_date,
			COALESCE(j.responsibilities, ''), COALESCE(j.min_education, ''),
			COALESCE(j.min_experience, ''), COALESCE(j.preferred_qualifications, ''),
			COALESCE(j.salary_range, ''), COALESCE(j.job_identification, ''),
			COALESCE(j.job_category, ''), COALESCE(j.degree_level, ''),
			COALESCE(j.ecl_gtc_required, ''), j.first_seen, j.last_seen
		 FROM jobs j JOIN companies c ON c.id = j.company_id
		 ORDER BY c.name, j.title`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []StoredJob
	for rows.Next() {
		// The driver parses DATE/DATETIME columns into time.Time, so
		// posted_date must come back through NullTime, not a string.
		var (
			j      StoredJob
			posted sql.NullTime
		)
		if err := rows.Scan(
			&j.ID, &j.Company, &j.Platform, &j.Title, &j.URL,
			&j.Location, &posted,
			&j.Fields.Responsibilities, &j.Fields.MinEducation,
			&j.Fields.MinExperience, &j.Fields.PreferredQualifications,
			&j.Fields.SalaryRange, &j.Fields.JobIdentification,
			&j.Fields.JobCategory, &j.Fields.DegreeLevel,
			&j.Fields.EclGtcRequired, &j.FirstSeen, &j.LastSeen,
		); err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		if posted.Valid {
			t := posted.Time
			j.PostedDate = &t
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// LatestRun returns the most recent scrape run, or nil when none exist.
func (s *SQLiteStore) LatestRun() (*model.ScrapeRun, error) {
	var (
		run   model.ScrapeRun
		notes sql.NullString
	)
	err := s.db.QueryRow(
		`SELECT started_at, finished_at, companies_scraped,
			jobs_found, jobs_new, jobs_updated, status, notes
		 FROM scrape_runs ORDER BY id DESC LIMIT 1`,
	).Scan(
		&run.StartedAt, &run.FinishedAt, &run.CompaniesScraped,
		&run.JobsFound, &run.JobsNew, &run.JobsUpdated, &run.Status, &notes,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest run: %w", err)
	}
	run.Notes = notes.String
	return &run, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// nullable maps "" to NULL so absent extracted fields stay NULL in the
// schema rather than becoming empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}
