package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractIndustry classifies the page against the fixed taxonomy using the
// meta description and title. Deliberately coarse: the first category with a
// keyword hit wins, "" when none match.
func (x *Extractor) extractIndustry(doc *goquery.Document) string {
	description, _ := doc.Find(`meta[name="description"]`).Attr("content")
	if description == "" {
		description, _ = doc.Find(`meta[property="og:description"]`).Attr("content")
	}
	title := doc.Find("title").First().Text()

	haystack := strings.ToLower(description + " " + title)
	if strings.TrimSpace(haystack) == "" {
		return ""
	}
	for _, category := range x.tables.Industries {
		for _, keyword := range category.Keywords {
			if strings.Contains(haystack, strings.ToLower(keyword)) {
				return category.Name
			}
		}
	}
	return ""
}
