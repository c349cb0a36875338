package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alreinhart/TXSemiModel/internal/model"
	"github.com/alreinhart/TXSemiModel/internal/store"
)

func sampleJobs() []store.StoredJob {
	posted := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	seen := time.Date(2026, time.April, 1, 6, 30, 0, 0, time.UTC)
	return []store.StoredJob{
		{
			Company:    "Texas Instruments",
			Platform:   "oraclecloud",
			Title:      "Analog Design Engineer",
			Location:   "Dallas, TX",
			URL:        "https://example.com/job/1",
			PostedDate: &posted,
			Fields: model.ExtractedFields{
				Responsibilities: "Design circuits\nRun tests",
				MinEducation:     "Bachelor's degree",
				SalaryRange:      "$110,000 - $150,000",
			},
			FirstSeen: seen,
			LastSeen:  seen,
		},
		{
			Company:   "NXP",
			Platform:  "workday",
			Title:     "Test Engineer",
			URL:       "https://example.com/job/2",
			FirstSeen: seen,
			LastSeen:  seen,
		},
	}
}

func TestWriteJobs(t *testing.T) {
	var sb strings.Builder
	if err := WriteJobs(&sb, sampleJobs()); err != nil {
		t.Fatalf("WriteJobs: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "company" || rows[0][5] != "posted_date" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "Texas Instruments" || rows[1][5] != "2026-03-15" {
		t.Errorf("unexpected first row %v", rows[1])
	}
	// Multiline fields survive CSV quoting.
	if rows[1][6] != "Design circuits\nRun tests" {
		t.Errorf("responsibilities mangled: %q", rows[1][6])
	}
	// Absent date and fields export as empty cells.
	if rows[2][5] != "" || rows[2][6] != "" {
		t.Errorf("expected empty cells for absent values, got %v", rows[2])
	}
}

func TestExportFileCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := ExportFile(dir, sampleJobs())
	if err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("file written outside export dir: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.HasPrefix(string(data), "company,platform,title") {
		t.Errorf("unexpected file contents: %q", string(data[:40]))
	}
}
