package crawler

import (
	"fmt"
	"time"
)

// Target is one input unit: the URL to crawl plus an optional company-name
// hint from the source spreadsheet, used only as an extraction fallback.
type Target struct {
	URL         string
	CompanyName string
}

// Page is a redirect-resolved fetch outcome that carries content. Non-2xx
// definitive responses still produce a Page so the extractor can run on
// whatever body the server returned.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Body       []byte
}

// ErrorKind classifies terminal fetch failures.
type ErrorKind string

// Fetch failure kinds.
const (
	ErrorKindTimeout    ErrorKind = "timeout"
	ErrorKindConnection ErrorKind = "connection"
	ErrorKindHTTP       ErrorKind = "http"
)

// FetchError is returned by the Fetcher once retries are exhausted.
// StatusCode is zero unless a definitive HTTP status was observed.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Extraction holds the structured signals pulled from one page. Every field
// is independently optional; an empty string means "not found".
type Extraction struct {
	Email          string
	InquiryFormURL string
	CompanyName    string
	Industry       string
}

// Status is the terminal state of one crawl target.
type Status string

// Crawl status values written to every sink.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusBlocked Status = "blocked"
)

// Result is the unit exported per target. Field names follow the sheet
// schema consumed by the export endpoints; optional fields are omitted when
// empty so a blocked target carries no httpStatus.
type Result struct {
	URL            string    `json:"url"`
	Email          string    `json:"email,omitempty"`
	InquiryFormURL string    `json:"inquiryFormUrl,omitempty"`
	CompanyName    string    `json:"companyName,omitempty"`
	Industry       string    `json:"industry,omitempty"`
	HTTPStatus     int       `json:"httpStatus,omitempty"`
	RobotsAllowed  bool      `json:"robotsAllowed"`
	LastCrawledAt  time.Time `json:"lastCrawledAt"`
	CrawlStatus    Status    `json:"crawlStatus"`
	ErrorMessage   string    `json:"errorMessage,omitempty"`
}

// Summary aggregates a finished batch. Derived from the result set after all
// targets complete; never persisted on its own.
type Summary struct {
	Total             int
	Succeeded         int
	Failed            int
	Blocked           int
	Skipped           int
	EmailsFound       int
	FormsFound        int
	CompanyNamesFound int
	Elapsed           time.Duration
}
