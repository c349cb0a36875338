package extract

import "regexp"

// Pattern is a single compiled section pattern with at most one capture
// group. All patterns match case-insensitively.
type Pattern struct {
	re *regexp.Regexp
}

// MustPattern compiles expr case-insensitively, panicking on a bad
// expression. Intended for the package-level default tables; patterns
// arriving from config go through CompilePattern instead.
func MustPattern(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(`(?i)` + expr)}
}

// CompilePattern compiles expr case-insensitively.
func CompilePattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(`(?i)` + expr)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{re: re}, nil
}

// MatchString reports whether the pattern matches anywhere in s.
func (p Pattern) MatchString(s string) bool {
	return p.re != nil && p.re.MatchString(s)
}

// ExtractSection tries each pattern in order against text and returns the
// first usable match, cleaned. If the winning pattern has a capture group
// that participated in the match, the captured text is returned; otherwise
// the whole match is. A match whose cleaned value falls below the noise
// floor does not count — the next pattern is tried. Returns "" when no
// pattern yields a value.
//
// Pattern order is a deliberate policy: tables run from specific labeled
// sections down to loose keyword heuristics, so the labeled form always
// wins when both are present.
func ExtractSection(text string, patterns []Pattern) string {
	for _, p := range patterns {
		if p.re == nil {
			continue
		}
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 && m[1] != "" {
			value = m[1]
		}
		if cleaned := Clean(value); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// FirstMatch runs each extractor in order and returns the first non-empty
// result. It keeps multi-tier fallback chains explicit: each tier is a
// standalone function testable on its own.
func FirstMatch(extractors ...func() string) string {
	for _, fn := range extractors {
		if v := fn(); v != "" {
			return v
		}
	}
	return ""
}
