package extract

// Field identifies one extraction target. Values double as CSV headers and
// config keys.
type Field string

const (
	FieldResponsibilities        Field = "responsibilities"
	FieldMinEducation            Field = "min_education"
	FieldMinExperience           Field = "min_experience"
	FieldPreferredQualifications Field = "preferred_qualifications"
	FieldSalaryRange             Field = "salary_range"
)

// Fields lists all extraction targets in output order.
var Fields = []Field{
	FieldResponsibilities,
	FieldMinEducation,
	FieldMinExperience,
	FieldPreferredQualifications,
	FieldSalaryRange,
}

// Config carries the pattern tables the extractor runs on. Everything here
// is data: per-company customization swaps tables without touching logic.
type Config struct {
	// Sections are tried against tag-stripped plain text, in order,
	// most-specific first.
	Sections map[Field][]Pattern
	// Headings anchor the structured bullet pass.
	Headings map[Field][]Pattern
	// LooseHeadings anchor the second, looser bullet pass.
	LooseHeadings map[Field][]Pattern
	// BoilerplatePhrases are removed from within prose paragraphs.
	BoilerplatePhrases []Pattern
	// BoilerplateParagraphs discard a whole paragraph on match.
	BoilerplateParagraphs []Pattern
}

// DefaultConfig returns the stock pattern tables. The tables are shared;
// callers treat them as read-only.
func DefaultConfig() Config {
	return Config{
		Sections:              defaultSectionPatterns,
		Headings:              defaultHeadingPatterns,
		LooseHeadings:         defaultLooseHeadingPatterns,
		BoilerplatePhrases:    defaultBoilerplatePhrases,
		BoilerplateParagraphs: defaultBoilerplateParagraphs,
	}
}

// Section patterns run most-specific ("Minimum Education:") to most
// heuristic (a bare degree mention). Order is the tie-break policy: a
// labeled section always beats a loose keyword hit.
var defaultSectionPatterns = map[Field][]Pattern{
	FieldResponsibilities: {
		// Counted repeats are capped at 1000 by the regexp package; the
		// field cap in Clean handles anything longer.
		MustPattern(`(?:key|primary|essential)\s+(?:responsibilities|duties|functions)\s*:?\s*([^|]{30,1000})`),
		MustPattern(`responsibilities(?:\s+include)?\s*:\s*([^|]{30,1000})`),
	},
	FieldMinEducation: {
		MustPattern(`minimum\s+education(?:\s+requirements?)?\s*:?\s*([^.\n]+)`),
		MustPattern(`education(?:al)?\s+requirements?\s*:?\s*([^.\n]+)`),
		MustPattern(`(bachelor(?:'|’)?s?\s+(?:degree|of\s+science|of\s+engineering)[^.\n]*)`),
		MustPattern(`(master(?:'|’)?s?\s+degree[^.\n]*)`),
		MustPattern(`(ph\.?\s?d\.?\s[^.\n]*)`),
		MustPattern(`(associate(?:'|’)?s?\s+degree[^.\n]*)`),
	},
	FieldMinExperience: {
		MustPattern(`minimum\s+experience\s*:?\s*([^.\n]+)`),
		MustPattern(`experience\s+requirements?\s*:?\s*([^.\n]+)`),
		MustPattern(`(\d+\+?\s*(?:-|–|to)\s*\d+\+?\s+years?[^.\n]*experience[^.\n]*)`),
		MustPattern(`(\d+\+?\s+years?(?:\s+of)?\s+[^.\n]*experience[^.\n]*)`),
	},
	FieldPreferredQualifications: {
		MustPattern(`preferred\s+qualifications\s*:?\s*([^|]{10,1000})`),
		MustPattern(`preferred\s+(?:skills|experience)\s*:?\s*([^.\n]+)`),
		MustPattern(`nice\s+to\s+haves?\s*:?\s*([^.\n]+)`),
	},
	FieldSalaryRange: {
		MustPattern(`salary\s+range\s*:?\s*([^.\n]+)`),
		MustPattern(`(?:base\s+)?(?:pay|compensation)\s+range\s*:?\s*([^.\n]+)`),
		// Bare currency range, the last resort when nothing is labeled:
		// "$90,000 - $120,000", "$90K-$120K", "$90k to $120k".
		MustPattern(`\$\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?\s*k?\s*(?:-|–|—|to)\s*\$?\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?\s*k?`),
	},
}

var defaultHeadingPatterns = map[Field][]Pattern{
	FieldResponsibilities: {
		MustPattern(`key\s+responsibilities\s*:?`),
		MustPattern(`(?:your\s+)?responsibilities(?:\s+include)?\s*:?`),
		MustPattern(`what\s+you(?:'|’)?ll\s+do\s*:?`),
		MustPattern(`(?:essential|primary)\s+(?:duties|functions)\s*:?`),
		MustPattern(`about\s+the\s+(?:role|job|position)\s*:?`),
	},
	FieldMinEducation: {
		MustPattern(`minimum\s+education\s*:?`),
		MustPattern(`education(?:al)?\s+requirements?\s*:?`),
	},
	FieldMinExperience: {
		MustPattern(`minimum\s+(?:requirements|experience)\s*:?`),
		MustPattern(`(?:required|minimum|basic)\s+qualifications\s*:?`),
		MustPattern(`what\s+you(?:'|’)?ll\s+need\s*:?`),
	},
	FieldPreferredQualifications: {
		MustPattern(`preferred\s+qualifications\s*:?`),
		MustPattern(`(?:desired|preferred)\s+(?:skills|experience)\s*:?`),
		MustPattern(`nice\s+to\s+haves?\s*:?`),
	},
	FieldSalaryRange: {
		MustPattern(`salary\s+range\s*:?`),
		MustPattern(`compensation(?:\s+and\s+benefits)?\s*:?`),
	},
}

// Loose headings are a single keyword each, used only after the specific
// headings found nothing.
var defaultLooseHeadingPatterns = map[Field][]Pattern{
	FieldResponsibilities:        {MustPattern(`responsib\w*`)},
	FieldMinEducation:            {MustPattern(`education`)},
	FieldMinExperience:           {MustPattern(`qualifications?`), MustPattern(`requirements?`)},
	FieldPreferredQualifications: {MustPattern(`preferred`)},
	FieldSalaryRange:             {MustPattern(`salary`), MustPattern(`compensation`)},
}

// Boilerplate phrases stripped from within a paragraph: taglines and
// sponsorship disclaimers that ride along inside otherwise useful prose.
var defaultBoilerplatePhrases = []Pattern{
	MustPattern(`we (?:don(?:'|’)t|do not|cannot|are unable to) (?:currently )?(?:offer|provide|support) (?:visa )?sponsorship[^.]*\.?`),
	MustPattern(`(?:visa )?sponsorship (?:is|will) not (?:be )?(?:available|provided|offered)[^.]*\.?`),
	MustPattern(`change the world[,.]? one chip at a time[^.]*\.?`),
	MustPattern(`(?:put|we put) your talents? to work[^.]*\.?`),
	MustPattern(`join (?:us|our team) (?:and|to) shape the future of (?:electronics|semiconductors)[^.]*\.?`),
}

// Whole-paragraph boilerplate: legal statements and "About <Company>"
// headers that would otherwise pollute the prose fallback.
var defaultBoilerplateParagraphs = []Pattern{
	MustPattern(`equal\s+opportunity\s+employer`),
	MustPattern(`^about\s+[^.!?]{0,60}$`),
	MustPattern(`(?:committed\s+to|celebrates?|embraces?)\s+(?:an?\s+)?(?:divers|inclus)\w+`),
	MustPattern(`accommodations?\s+(?:for|to)\s+(?:applicants|individuals|candidates)\s+with\s+disabilit`),
	MustPattern(`without\s+regard\s+to\s+race`),
	MustPattern(`e-?verify`),
}
