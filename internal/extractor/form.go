package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractFormURL finds the first anchor or form carrying inquiry/contact
// semantics and resolves it against the page URL. First match in document
// order wins; "" when nothing matches.
func (x *Extractor) extractFormURL(doc *goquery.Document, sourceURL string) string {
	base, err := url.Parse(sourceURL)
	if err != nil {
		base = nil
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if !crawlableHref(href) {
			return true
		}
		if x.matchesFormKeyword(s.Text()) || x.matchesFormKeyword(href) {
			found = resolveHref(base, href)
			return found == ""
		}
		return true
	})
	if found != "" {
		return found
	}

	doc.Find("form[action]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		action, _ := s.Attr("action")
		if !crawlableHref(action) {
			return true
		}
		if x.matchesFormKeyword(action) {
			found = resolveHref(base, action)
			return found == ""
		}
		return true
	})
	return found
}

func (x *Extractor) matchesFormKeyword(text string) bool {
	haystack := strings.ToLower(strings.TrimSpace(text))
	if haystack == "" {
		return false
	}
	for _, keyword := range x.tables.FormKeywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func crawlableHref(href string) bool {
	href = strings.TrimSpace(strings.ToLower(href))
	if href == "" || href == "#" {
		return false
	}
	for _, scheme := range []string{"mailto:", "tel:", "javascript:"} {
		if strings.HasPrefix(href, scheme) {
			return false
		}
	}
	return true
}

func resolveHref(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base == nil {
		if ref.IsAbs() {
			return ref.String()
		}
		return ""
	}
	return base.ResolveReference(ref).String()
}
