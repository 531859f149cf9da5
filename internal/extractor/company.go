package extractor

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// extractCompanyName resolves the entity name with the preference order
// title, og:title, the caller-supplied hint, then the hostname. Title text
// is cleaned of tagline separators and marketing boilerplate; all cleaning
// is rune-safe for Japanese text.
func (x *Extractor) extractCompanyName(doc *goquery.Document, sourceURL, companyHint string) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		if name := x.cleanTitle(title); name != "" {
			return name
		}
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if name := x.cleanTitle(strings.TrimSpace(og)); name != "" {
			return name
		}
	}
	return companyNameFallback(companyHint, sourceURL)
}

func (x *Extractor) cleanTitle(title string) string {
	name := title
	// Taglines follow the first separator; keep the leading segment.
	for _, sep := range x.tables.TitleSeparators {
		if i := strings.Index(name, sep); i >= 0 {
			name = name[:i]
		}
	}
	name = x.stripBoilerplate(strings.TrimSpace(name))
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, "・-–—:：|｜ ")
	if utf8.RuneCountInString(name) < 2 {
		return ""
	}
	return name
}

// stripBoilerplate removes marketing tokens from the edges of the name only.
// A token inside a word stays put: TOPAZ keeps its TOP.
func (x *Extractor) stripBoilerplate(name string) string {
	for {
		stripped := name
		for _, token := range x.tables.BoilerplateTokens {
			if stripped == token {
				return ""
			}
			if rest, ok := strings.CutPrefix(stripped, token); ok && edgeBoundary(rest, true) {
				stripped = strings.TrimSpace(rest)
			}
			if rest, ok := strings.CutSuffix(stripped, token); ok && edgeBoundary(rest, false) {
				stripped = strings.TrimSpace(rest)
			}
		}
		if stripped == name {
			return name
		}
		name = stripped
	}
}

// edgeBoundary reports whether cutting a token here lands on a word
// boundary: the rune left adjacent to the cut must not be a letter or digit.
func edgeBoundary(rest string, tokenLeads bool) bool {
	if rest == "" {
		return true
	}
	var adjacent rune
	if tokenLeads {
		adjacent, _ = utf8.DecodeRuneInString(rest)
	} else {
		adjacent, _ = utf8.DecodeLastRuneInString(rest)
	}
	return !unicode.IsLetter(adjacent) && !unicode.IsDigit(adjacent)
}

func companyNameFallback(companyHint, sourceURL string) string {
	if hint := strings.TrimSpace(companyHint); hint != "" {
		return hint
	}
	if u, err := url.Parse(sourceURL); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return ""
}
