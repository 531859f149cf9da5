package crawler

import (
	"context"
	"time"
)

// Fetcher retrieves a single page. A returned error is always a *FetchError;
// non-2xx definitive responses are a Page, not an error.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// RobotsPolicy answers whether a URL may be fetched. Implementations never
// return an error; policy lookup failures resolve fail-open.
type RobotsPolicy interface {
	Allowed(ctx context.Context, rawURL string) bool
}

// Extractor turns fetched HTML into structured contact signals. It must be a
// pure function of its inputs and must not fail on malformed markup.
type Extractor interface {
	Extract(body []byte, sourceURL, companyHint string) Extraction
}

// Crawler processes one target end to end. Every call returns a fully
// populated Result; nothing propagates as an error.
type Crawler interface {
	CrawlOne(ctx context.Context, target Target) Result
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
