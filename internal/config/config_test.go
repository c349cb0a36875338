package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alreinhart/TXSemiModel/internal/extract"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
companies:
  - name: Texas Instruments
    platform: oraclecloud
    site_url: https://ti.example.com/hcmRestApi
    site_number: CX_1
    keywords: engineer
    enabled: true
  - name: NXP
    platform: workday
    workday_url: https://nxp.example.com/wday/cxs/nxp/careers
    enabled: true
http:
  timeout: 45s
rate_limit:
  min_delay: 3s
  platform_overrides:
    workday: 5s
database:
  path: data/jobs.db
export:
  dir: out
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Companies) != 2 || cfg.Companies[0].SiteNumber != "CX_1" {
		t.Errorf("Companies = %+v", cfg.Companies)
	}
	if cfg.HTTP.Timeout != 45*time.Second {
		t.Errorf("HTTP.Timeout = %v, want 45s", cfg.HTTP.Timeout)
	}
	if cfg.RateLimit.MinDelayFor("workday") != 5*time.Second {
		t.Errorf("MinDelayFor(workday) = %v, want 5s", cfg.RateLimit.MinDelayFor("workday"))
	}
	if cfg.RateLimit.MinDelayFor("oraclecloud") != 3*time.Second {
		t.Errorf("MinDelayFor(oraclecloud) = %v, want 3s", cfg.RateLimit.MinDelayFor("oraclecloud"))
	}
	if cfg.Database.Path != "data/jobs.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Export.Dir != "out" {
		t.Errorf("Export.Dir = %q", cfg.Export.Dir)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
companies:
  - name: NXP
    platform: workday
    workday_url: https://nxp.example.com/wday/cxs/nxp/careers
    enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want default %v", cfg.HTTP.Timeout, defaultTimeout)
	}
	if cfg.HTTP.UserAgent == "" {
		t.Error("expected default user agent")
	}
	if cfg.Retry.MaxRetries != defaultRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.Retry.MaxRetries, defaultRetries)
	}
	if cfg.Database.Path != defaultDBPath {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, defaultDBPath)
	}
	// Stock extraction tables come through untouched.
	if len(cfg.Extraction.Sections[extract.FieldSalaryRange]) == 0 {
		t.Error("expected stock salary patterns")
	}
}

func TestLoad_ExtractionOverrides(t *testing.T) {
	path := writeConfig(t, `
companies:
  - name: NXP
    platform: workday
    workday_url: https://nxp.example.com/wday/cxs/nxp/careers
    enabled: true
extraction:
  sections:
    salary_range:
      - 'pay\s+band\s*:?\s*([^.\n]+)'
  boilerplate_phrases:
    - 'an\s+equal\s+opportunity\s+employer'
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	salary := cfg.Extraction.Sections[extract.FieldSalaryRange]
	if len(salary) != 1 {
		t.Fatalf("expected 1 override pattern, got %d", len(salary))
	}
	if !salary[0].MatchString("Pay Band: E4 through E6") {
		t.Error("override pattern not compiled case-insensitively")
	}
	// Other fields keep their stock lists.
	if len(cfg.Extraction.Sections[extract.FieldMinEducation]) == 0 {
		t.Error("untouched field lost its stock patterns")
	}
	if len(cfg.Extraction.BoilerplatePhrases) != 1 {
		t.Errorf("expected 1 phrase, got %d", len(cfg.Extraction.BoilerplatePhrases))
	}
	// Paragraph list was not overridden, so the stock one remains.
	if len(cfg.Extraction.BoilerplateParagraphs) == 0 {
		t.Error("expected stock paragraph patterns")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TXSEMI_DB", "/tmp/env.db")
	path := writeConfig(t, `
companies:
  - name: NXP
    platform: workday
    workday_url: https://nxp.example.com/wday/cxs/nxp/careers
    enabled: true
database:
  path: ${TXSEMI_DB}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("Database.Path = %q, want env-expanded value", cfg.Database.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "companies: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "no enabled companies",
			content: `
companies:
  - name: NXP
    platform: workday
    workday_url: https://nxp.example.com/wday/cxs/nxp/careers
    enabled: false
`,
			wantErr: "at least one company",
		},
		{
			name: "unknown platform",
			content: `
companies:
  - name: NXP
    platform: greenhouse
    enabled: true
`,
			wantErr: "unknown platform",
		},
		{
			name: "workday missing url",
			content: `
companies:
  - name: NXP
    platform: workday
    enabled: true
`,
			wantErr: "workday_url is required",
		},
		{
			name: "oraclecloud missing site number",
			content: `
companies:
  - name: TI
    platform: oraclecloud
    site_url: https://ti.example.com/hcmRestApi
    enabled: true
`,
			wantErr: "site_number is required",
		},
		{
			name: "bad extraction field",
			content: `
companies:
  - name: NXP
    platform: workday
    workday_url: https://nxp.example.com/wday/cxs/nxp/careers
    enabled: true
extraction:
  sections:
    bogus_field:
      - 'x'
`,
			wantErr: "unknown field",
		},
		{
			name: "bad extraction regex",
			content: `
companies:
  - name: NXP
    platform: workday
    workday_url: https://nxp.example.com/wday/cxs/nxp/careers
    enabled: true
extraction:
  sections:
    salary_range:
      - '([unclosed'
`,
			wantErr: "compile extraction.sections.salary_range",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load: expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}
