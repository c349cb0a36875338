package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Elements that can carry a section heading. Career-site markup wraps
// headings in anything from <h3> to a bare <span>, often split across
// several inline tags.
const headingCandidateTags = "h1, h2, h3, h4, h5, h6, strong, b, p, div, span, u, em"

// maxHeadingLen keeps a wrapper element whose text happens to contain the
// heading (plus a whole section of prose) from being mistaken for the
// heading itself.
const maxHeadingLen = 120

// ExtractBullets finds the section introduced by one of the heading
// patterns and returns its list-item texts joined by newlines. Patterns are
// tried in order; the first that yields at least one item wins. Returns ""
// when no heading matches, no list follows a matched heading, or the HTML
// cannot be parsed.
func ExtractBullets(rawHTML string, headings []Pattern) string {
	if strings.TrimSpace(rawHTML) == "" || len(headings) == 0 {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()

	// The pre-check scans the whole document's text, so it must not run
	// through Clean's field-length cap: a heading past the cap would be
	// silently invisible.
	plain := collapseSpace(doc.Text())
	if plain == "" {
		return ""
	}

	for _, h := range headings {
		if h.re == nil || !h.re.MatchString(plain) {
			// Cheap plain-text pre-check before any tree walking.
			continue
		}
		node := findHeadingNode(doc, h)
		if node == nil {
			continue
		}
		// First strategy: walk top-level siblings after the heading's
		// block. Second: walk siblings of the heading element itself,
		// for headings nested inside a shared container with their list.
		if items := siblingItems(topBlock(node)); len(items) > 0 {
			return joinItems(items)
		}
		if items := siblingItems(node); len(items) > 0 {
			return joinItems(items)
		}
	}
	return ""
}

// findHeadingNode returns the innermost element whose text matches the
// heading pattern. Matching on the element's aggregate text tolerates a
// heading split across multiple inline tags
// (e.g. <p><b>Key</b> <b>Responsibilities:</b></p>).
func findHeadingNode(doc *goquery.Document, h Pattern) *goquery.Selection {
	var found *goquery.Selection
	doc.Find(headingCandidateTags).Each(func(_ int, s *goquery.Selection) {
		text := Clean(s.Text())
		if text == "" || len(text) > maxHeadingLen || !h.re.MatchString(text) {
			return
		}
		// First occurrence wins; a matching descendant narrows the
		// earlier wrapper match down to the innermost element.
		if found == nil || contains(found, s) {
			found = s
		}
	})
	return found
}

// contains reports whether ancestor contains the single-element selection sel.
func contains(ancestor, sel *goquery.Selection) bool {
	ok := false
	sel.Parents().Each(func(_ int, p *goquery.Selection) {
		if len(p.Nodes) > 0 && len(ancestor.Nodes) > 0 && p.Nodes[0] == ancestor.Nodes[0] {
			ok = true
		}
	})
	return ok
}

// topBlock climbs from the heading element to its top-level block (the
// ancestor sitting directly under <body>).
func topBlock(sel *goquery.Selection) *goquery.Selection {
	block := sel
	for {
		parent := block.Parent()
		if parent.Length() == 0 || parent.Is("body, html") {
			return block
		}
		block = parent
	}
}

// siblingItems walks the siblings following start, collecting list-item
// text until the next heading-like element ends the section.
func siblingItems(start *goquery.Selection) []string {
	var items []string
	for s := start.Next(); s.Length() > 0; s = s.Next() {
		if isSectionBoundary(s) {
			break
		}
		collectListItems(s, &items)
	}
	return items
}

// isSectionBoundary reports whether the element starts the next section: a
// structural heading, or a bold/strong run beginning with a capital letter
// and at least two characters long.
func isSectionBoundary(s *goquery.Selection) bool {
	if s.Is("h1, h2, h3, h4, h5, h6") {
		return true
	}
	if s.Is("ul, ol") {
		return false
	}
	bold := s.Find("strong, b").First()
	if s.Is("strong, b") {
		bold = s
	}
	if bold.Length() == 0 {
		return false
	}
	text := Clean(bold.Text())
	if len(text) < 2 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text)
	return unicode.IsUpper(r)
}

func collectListItems(s *goquery.Selection, items *[]string) {
	if s.Is("li") {
		if t := Clean(s.Text()); t != "" {
			*items = append(*items, t)
		}
		return
	}
	s.Find("li").Each(func(_ int, li *goquery.Selection) {
		if t := Clean(li.Text()); t != "" {
			*items = append(*items, t)
		}
	})
}

func joinItems(items []string) string {
	return cleanMultiline(strings.Join(items, "\n"))
}
