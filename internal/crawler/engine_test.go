package crawler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRobots struct{ allowed bool }

func (s stubRobots) Allowed(context.Context, string) bool { return s.allowed }

type stubFetcher struct {
	page Page
	err  error
}

func (s stubFetcher) Fetch(context.Context, string) (Page, error) { return s.page, s.err }

type stubExtractor struct {
	extraction Extraction
	panicWith  any
}

func (s stubExtractor) Extract([]byte, string, string) Extraction {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.extraction
}

func newTestEngine(robots RobotsPolicy, fetcher Fetcher, ex Extractor) *Engine {
	return NewEngine(robots, fetcher, ex, testClock(), zap.NewNop())
}

func TestCrawlOneBlockedByRobots(t *testing.T) {
	t.Parallel()

	e := newTestEngine(stubRobots{allowed: false}, stubFetcher{}, stubExtractor{})

	r := e.CrawlOne(context.Background(), Target{URL: "https://example.com"})

	require.Equal(t, StatusBlocked, r.CrawlStatus)
	require.False(t, r.RobotsAllowed)
	require.Zero(t, r.HTTPStatus, "no fetch happens for a blocked target")
	require.NotEmpty(t, r.ErrorMessage)
	require.Equal(t, testClock().Now(), r.LastCrawledAt)
}

func TestCrawlOneFetchFailure(t *testing.T) {
	t.Parallel()

	fe := &FetchError{Kind: ErrorKindHTTP, StatusCode: 503, Message: "transient status 503"}
	e := newTestEngine(stubRobots{allowed: true}, stubFetcher{err: fe}, stubExtractor{})

	r := e.CrawlOne(context.Background(), Target{URL: "https://example.com"})

	require.Equal(t, StatusError, r.CrawlStatus)
	require.True(t, r.RobotsAllowed)
	require.Equal(t, 503, r.HTTPStatus)
	require.Contains(t, r.ErrorMessage, "503")
	require.Empty(t, r.Email)
}

func TestCrawlOneSuccess(t *testing.T) {
	t.Parallel()

	e := newTestEngine(
		stubRobots{allowed: true},
		stubFetcher{page: Page{
			URL:        "https://example.com",
			FinalURL:   "https://example.com/home",
			StatusCode: 200,
			Body:       []byte("<html></html>"),
		}},
		stubExtractor{extraction: Extraction{
			Email:          "info@example.com",
			InquiryFormURL: "https://example.com/contact",
			CompanyName:    "Example Inc",
			Industry:       "technology",
		}},
	)

	r := e.CrawlOne(context.Background(), Target{URL: "https://example.com"})

	require.Equal(t, StatusSuccess, r.CrawlStatus)
	require.True(t, r.RobotsAllowed)
	require.Equal(t, 200, r.HTTPStatus)
	require.Equal(t, "https://example.com/home", r.URL, "redirect-resolved URL wins")
	require.Equal(t, "info@example.com", r.Email)
	require.Equal(t, "https://example.com/contact", r.InquiryFormURL)
	require.Equal(t, "Example Inc", r.CompanyName)
	require.Equal(t, "technology", r.Industry)
	require.Empty(t, r.ErrorMessage)
}

func TestCrawlOneDefinitiveNonSuccessStatus(t *testing.T) {
	t.Parallel()

	e := newTestEngine(
		stubRobots{allowed: true},
		stubFetcher{page: Page{
			URL:        "https://example.com",
			StatusCode: 404,
			Body:       []byte("<html><title>Example Inc</title></html>"),
		}},
		stubExtractor{extraction: Extraction{CompanyName: "Example Inc"}},
	)

	r := e.CrawlOne(context.Background(), Target{URL: "https://example.com"})

	require.Equal(t, StatusError, r.CrawlStatus)
	require.Equal(t, 404, r.HTTPStatus)
	require.Contains(t, r.ErrorMessage, "404")
	require.Equal(t, "Example Inc", r.CompanyName, "extraction still runs on error pages")
}

func TestCrawlOneRecoversFromPanic(t *testing.T) {
	t.Parallel()

	e := newTestEngine(
		stubRobots{allowed: true},
		stubFetcher{page: Page{StatusCode: 200, Body: []byte("x")}},
		stubExtractor{panicWith: "boom"},
	)

	r := e.CrawlOne(context.Background(), Target{URL: "https://example.com"})

	require.Equal(t, StatusError, r.CrawlStatus)
	require.Equal(t, "https://example.com", r.URL)
	require.Contains(t, r.ErrorMessage, "internal error")
	require.Equal(t, testClock().Now(), r.LastCrawledAt)
}
