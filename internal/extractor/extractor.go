// Package extractor derives structured business-contact signals from fetched
// HTML. Extraction is a pure function of its inputs: no network I/O, no
// shared state, and malformed markup degrades to empty fields instead of
// failing.
package extractor

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

// Extractor applies the heuristic tables to one page at a time.
type Extractor struct {
	tables Tables
}

// New builds an Extractor; zero-value table fields use the defaults.
func New(tables Tables) *Extractor {
	return &Extractor{tables: tables.merged()}
}

// Extract implements crawler.Extractor. companyHint is the optional known
// company name supplied with the input row, used as a fallback only.
func (x *Extractor) Extract(body []byte, sourceURL, companyHint string) crawler.Extraction {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil || doc == nil {
		// No parsable markup: only the non-DOM fallbacks can answer.
		return crawler.Extraction{
			CompanyName: companyNameFallback(companyHint, sourceURL),
		}
	}
	return crawler.Extraction{
		Email:          x.extractEmail(doc, sourceURL),
		InquiryFormURL: x.extractFormURL(doc, sourceURL),
		CompanyName:    x.extractCompanyName(doc, sourceURL, companyHint),
		Industry:       x.extractIndustry(doc),
	}
}
