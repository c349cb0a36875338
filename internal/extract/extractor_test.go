package extract

import (
	"strings"
	"testing"
)

const samplePosting = `
<p><strong>About the role:</strong></p>
<p>Our Dallas design center builds precision data converters for industrial customers.</p>
<p><strong>Key Responsibilities:</strong></p>
<ul>
  <li>Design and simulate analog circuit blocks</li>
  <li>Correlate silicon measurements against models</li>
</ul>
<p><strong>Minimum Requirements:</strong></p>
<ul>
  <li>Bachelor's degree in Electrical Engineering</li>
  <li>3+ years of experience in analog design</li>
</ul>
<p><strong>Preferred Qualifications:</strong></p>
<ul>
  <li>Experience with switched-capacitor circuits</li>
</ul>
<p>Salary Range: $110,000 - $150,000 depending on experience</p>
<p>Texas Instruments is an equal opportunity employer.</p>
`

func TestExtractFullPosting(t *testing.T) {
	e := NewExtractor(Config{})
	f := e.Extract(samplePosting)

	wantResp := "Design and simulate analog circuit blocks\nCorrelate silicon measurements against models"
	if f.Responsibilities != wantResp {
		t.Errorf("Responsibilities = %q, want %q", f.Responsibilities, wantResp)
	}
	if !strings.Contains(f.MinEducation, "Bachelor's degree in Electrical Engineering") {
		t.Errorf("MinEducation = %q, want the degree requirement", f.MinEducation)
	}
	if !strings.Contains(f.MinExperience, "3+ years") {
		t.Errorf("MinExperience = %q, want the years requirement", f.MinExperience)
	}
	if !strings.Contains(f.PreferredQualifications, "switched-capacitor") {
		t.Errorf("PreferredQualifications = %q, want the preferred item", f.PreferredQualifications)
	}
	if !strings.Contains(f.SalaryRange, "$110,000 - $150,000") {
		t.Errorf("SalaryRange = %q, want the labeled range", f.SalaryRange)
	}
}

func TestExtractProseFallbackForResponsibilities(t *testing.T) {
	html := `<p>You will own the bring-up of our next radar transceiver in the Dallas lab.</p>` +
		`<p>Texas Instruments is an equal opportunity employer.</p>`

	e := NewExtractor(Config{})
	f := e.Extract(html)
	if !strings.Contains(f.Responsibilities, "bring-up of our next radar transceiver") {
		t.Errorf("Responsibilities = %q, want the prose fallback text", f.Responsibilities)
	}
	if strings.Contains(f.Responsibilities, "equal opportunity") {
		t.Error("boilerplate leaked into responsibilities")
	}
}

func TestExtractAbsentFieldsStayEmpty(t *testing.T) {
	e := NewExtractor(Config{})
	f := e.Extract("<p>We are hiring! Come join the team in Austin sometime soon.</p>")

	if f.MinEducation != "" {
		t.Errorf("MinEducation = %q, want empty", f.MinEducation)
	}
	if f.SalaryRange != "" {
		t.Errorf("SalaryRange = %q, want empty", f.SalaryRange)
	}
	if f.JobIdentification != "" || f.EclGtcRequired != "" {
		t.Error("platform metadata must never be set by text extraction")
	}
}

func TestExtractDeterministic(t *testing.T) {
	e := NewExtractor(Config{})
	first := e.Extract(samplePosting)
	for i := 0; i < 3; i++ {
		if got := e.Extract(samplePosting); got != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestExtractWithOverriddenPatterns(t *testing.T) {
	cfg := Config{
		Sections: map[Field][]Pattern{
			FieldSalaryRange: {MustPattern(`pay band\s*:\s*([^.\n]+)`)},
		},
	}
	e := NewExtractor(cfg)
	f := e.Extract("<p>Pay Band: E4 through E6 inclusive</p>")
	if f.SalaryRange != "E4 through E6 inclusive" {
		t.Errorf("SalaryRange = %q, want the override pattern's capture", f.SalaryRange)
	}
}

func TestExtractEmptyDescription(t *testing.T) {
	e := NewExtractor(Config{})
	f := e.Extract("")
	if f != (NewExtractor(Config{}).Extract("")) {
		t.Error("empty input must be deterministic")
	}
	if f.Responsibilities != "" || f.SalaryRange != "" {
		t.Errorf("expected all-empty fields for empty input, got %+v", f)
	}
}
