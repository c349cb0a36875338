package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// minParagraphLen drops fragments and markup artifacts.
	minParagraphLen = 20
	// minProseLen is the floor for the joined result; anything shorter is
	// not a usable description.
	minProseLen = 30
)

// ExtractProse is the last tier of the fallback chain: when no bulleted
// section exists, it returns the posting's paragraph text with known
// boilerplate removed. Returns "" when nothing substantive survives or the
// HTML cannot be parsed.
func ExtractProse(rawHTML string, phrases, paragraphs []Pattern) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()

	var kept []string
	doc.Find("p, li").Each(func(_ int, s *goquery.Selection) {
		// Skip p/li that only wrap other collected elements; their text
		// would duplicate the children's.
		if s.Find("p, li").Length() > 0 {
			return
		}
		para := Clean(s.Text())
		if para == "" {
			return
		}
		for _, ph := range phrases {
			if ph.re != nil {
				para = ph.re.ReplaceAllString(para, "")
			}
		}
		para = Clean(para)
		if para == "" || len(para) < minParagraphLen {
			return
		}
		for _, pp := range paragraphs {
			if pp.re != nil && pp.re.MatchString(para) {
				return
			}
		}
		kept = append(kept, para)
	})

	if len(kept) == 0 {
		return ""
	}
	out := truncate(strings.Join(kept, "\n\n"), MaxFieldLen)
	if len(out) < minProseLen {
		return ""
	}
	return out
}
