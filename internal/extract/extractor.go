package extract

import (
	"github.com/alreinhart/TXSemiModel/internal/model"
)

// Extractor applies the configured pattern tables to a raw job description.
// It holds no mutable state; one instance is safe for concurrent use.
type Extractor struct {
	cfg Config
}

// NewExtractor returns an extractor over the given tables. Any table left
// nil falls back to the stock one, so config overrides can be partial.
func NewExtractor(cfg Config) *Extractor {
	def := DefaultConfig()
	if cfg.Sections == nil {
		cfg.Sections = def.Sections
	}
	if cfg.Headings == nil {
		cfg.Headings = def.Headings
	}
	if cfg.LooseHeadings == nil {
		cfg.LooseHeadings = def.LooseHeadings
	}
	if cfg.BoilerplatePhrases == nil {
		cfg.BoilerplatePhrases = def.BoilerplatePhrases
	}
	if cfg.BoilerplateParagraphs == nil {
		cfg.BoilerplateParagraphs = def.BoilerplateParagraphs
	}
	return &Extractor{cfg: cfg}
}

// Extract runs the field-level fallback policy over a raw description
// (HTML or plain text) and returns the extracted fields. Missing fields
// come back empty; Extract itself never fails.
//
// Per-field policy, in order:
//  1. structured bullet pass with the field's specific headings
//  2. loose bullet pass with single-keyword headings
//  3. labeled-section regex over the tag-stripped text
//
// Responsibilities alone add a final prose tier — an unlabeled posting's
// body text is its responsibilities. Salary skips the bullet tiers: ranges
// are labeled inline or appear as bare currency tokens, never as lists.
func (e *Extractor) Extract(description string) model.ExtractedFields {
	plain := StripTags(description)

	var f model.ExtractedFields
	f.Responsibilities = FirstMatch(
		func() string { return ExtractBullets(description, e.cfg.Headings[FieldResponsibilities]) },
		func() string { return ExtractBullets(description, e.cfg.LooseHeadings[FieldResponsibilities]) },
		func() string { return ExtractSection(plain, e.cfg.Sections[FieldResponsibilities]) },
		func() string {
			return ExtractProse(description, e.cfg.BoilerplatePhrases, e.cfg.BoilerplateParagraphs)
		},
	)
	f.MinEducation = e.fieldValue(description, plain, FieldMinEducation)
	f.MinExperience = e.fieldValue(description, plain, FieldMinExperience)
	f.PreferredQualifications = e.fieldValue(description, plain, FieldPreferredQualifications)
	f.SalaryRange = ExtractSection(plain, e.cfg.Sections[FieldSalaryRange])
	return f
}

func (e *Extractor) fieldValue(description, plain string, field Field) string {
	return FirstMatch(
		func() string { return ExtractBullets(description, e.cfg.Headings[field]) },
		func() string { return ExtractBullets(description, e.cfg.LooseHeadings[field]) },
		func() string { return ExtractSection(plain, e.cfg.Sections[field]) },
	)
}
