package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// dataAttrs are attributes some sites use instead of visible text.
var dataAttrs = []string{"data-email", "data-contact", "data-mail"}

type emailCandidate struct {
	address string
	mailto  bool
}

// extractEmail returns the single best business email on the page, or "".
// Candidates come from mailto links, data attributes, and visible text;
// free-mail and bot addresses are rejected, the rest ranked by how much the
// local part looks like a shared business mailbox.
func (x *Extractor) extractEmail(doc *goquery.Document, sourceURL string) string {
	seen := make(map[string]*emailCandidate)
	add := func(raw string, mailto bool) {
		address := normalizeEmail(raw)
		if address == "" || !x.acceptEmail(address) {
			return
		}
		if existing, ok := seen[address]; ok {
			existing.mailto = existing.mailto || mailto
			return
		}
		seen[address] = &emailCandidate{address: address, mailto: mailto}
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.HasPrefix(strings.ToLower(href), "mailto:") {
			return
		}
		address := href[len("mailto:"):]
		if i := strings.IndexByte(address, '?'); i >= 0 {
			address = address[:i]
		}
		add(address, true)
	})

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range dataAttrs {
			if value, ok := s.Attr(attr); ok {
				add(value, false)
			}
		}
	})

	for _, match := range emailPattern.FindAllString(visibleText(doc), -1) {
		add(match, false)
	}

	if len(seen) == 0 {
		return ""
	}
	candidates := make([]*emailCandidate, 0, len(seen))
	for _, c := range seen {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		si, sj := x.scoreEmail(candidates[i]), x.scoreEmail(candidates[j])
		if si != sj {
			return si > sj
		}
		return candidates[i].address < candidates[j].address
	})
	return candidates[0].address
}

// visibleText renders the document text without script/style/noscript
// content so JS string literals don't surface as candidates. Works on a
// clone to keep the document untouched for the other extractors.
func visibleText(doc *goquery.Document) string {
	cloned := doc.Selection.Clone()
	cloned.Find("script,style,noscript").Remove()
	return cloned.Text()
}

func normalizeEmail(raw string) string {
	address := strings.ToLower(strings.TrimSpace(raw))
	address = strings.Trim(address, ".,;:()<>[]\"'")
	if !emailPattern.MatchString(address) {
		return ""
	}
	return emailPattern.FindString(address)
}

func (x *Extractor) acceptEmail(address string) bool {
	at := strings.LastIndexByte(address, '@')
	if at <= 0 || at == len(address)-1 {
		return false
	}
	domain := address[at+1:]
	for _, free := range x.tables.FreeMailDomains {
		if domain == free {
			return false
		}
	}
	for _, marker := range x.tables.BotEmailMarkers {
		if strings.Contains(address, marker) {
			return false
		}
	}
	return true
}

func (x *Extractor) scoreEmail(c *emailCandidate) int {
	local := c.address[:strings.LastIndexByte(c.address, '@')]
	score := 0
	for _, keyword := range x.tables.PriorityLocalParts {
		if strings.Contains(local, keyword) {
			score += 10
		}
	}
	if len(local) < 10 {
		score += 5
	}
	if len(local) <= 20 {
		score += 3
	}
	if c.mailto {
		score += 20
	}
	return score
}
