// Package export writes stored jobs out as CSV for spreadsheet review.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alreinhart/TXSemiModel/internal/store"
)

var header = []string{
	"company", "platform", "title", "location", "url", "posted_date",
	"responsibilities", "min_education", "min_experience",
	"preferred_qualifications", "salary_range",
	"job_identification", "job_category", "degree_level", "ecl_gtc_required",
	"first_seen", "last_seen",
}

// WriteJobs writes jobs as CSV, header row first.
func WriteJobs(w io.Writer, jobs []store.StoredJob) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, j := range jobs {
		posted := ""
		if j.PostedDate != nil {
			posted = j.PostedDate.Format("2006-01-02")
		}
		f := j.Fields
		row := []string{
			j.Company, j.Platform, j.Title, j.Location, j.URL, posted,
			f.Responsibilities, f.MinEducation, f.MinExperience,
			f.PreferredQualifications, f.SalaryRange,
			f.JobIdentification, f.JobCategory, f.DegreeLevel, f.EclGtcRequired,
			j.FirstSeen.Format(time.RFC3339), j.LastSeen.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", j.URL, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes jobs to a dated CSV file under dir, creating dir if
// needed, and returns the file path.
func ExportFile(dir string, jobs []store.StoredJob) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("jobs_%s.csv", time.Now().Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	if err := WriteJobs(f, jobs); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}
	return path, nil
}
