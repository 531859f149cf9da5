package batch

import (
	"time"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

func summarize(results []crawler.Result, skipped int, elapsed time.Duration) crawler.Summary {
	s := crawler.Summary{
		Total:   len(results),
		Skipped: skipped,
		Elapsed: elapsed,
	}
	for _, r := range results {
		switch r.CrawlStatus {
		case crawler.StatusSuccess:
			s.Succeeded++
		case crawler.StatusBlocked:
			s.Blocked++
		default:
			s.Failed++
		}
		if r.Email != "" {
			s.EmailsFound++
		}
		if r.InquiryFormURL != "" {
			s.FormsFound++
		}
		if r.CompanyName != "" {
			s.CompanyNamesFound++
		}
	}
	return s
}
