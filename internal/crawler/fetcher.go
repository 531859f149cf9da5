package crawler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// FetcherConfig controls the HTTP collector shared by a batch run.
type FetcherConfig struct {
	UserAgent    string
	Timeout      time.Duration
	MaxRedirects int
	Concurrency  int
}

// CollyFetcher implements Fetcher using a shared Colly collector. The base
// collector carries the pooled transport; each fetch runs on a clone so
// callbacks never leak between targets. Cookies are per-clone, so nothing is
// trusted across unrelated hosts.
type CollyFetcher struct {
	base   *colly.Collector
	retry  *ExponentialRetryPolicy
	logger *zap.Logger
}

// NewCollyFetcher constructs a configured fetcher. The connection pool is
// sized for the batch concurrency cap and reused across all fetches.
func NewCollyFetcher(cfg FetcherConfig, retry *ExponentialRetryPolicy, logger *zap.Logger) (*CollyFetcher, error) {
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("fetcher timeout must be > 0")
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = 10
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	// Retries revisit the same URL; robots policy is enforced upstream.
	base.AllowURLRevisit = true
	base.IgnoreRobotsTxt = true
	base.ParseHTTPErrorResponse = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          128,
		MaxIdleConnsPerHost:   8,
		MaxConnsPerHost:       cfg.Concurrency * 2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.Timeout)
	maxRedirects := cfg.MaxRedirects
	base.SetRedirectHandler(func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	})

	return &CollyFetcher{
		base:   base,
		retry:  retry,
		logger: logger,
	}, nil
}

// Fetch performs one HTTP GET with bounded retries. Transient failures
// (connection errors, timeouts, and statuses 429/500/502/503/504) are
// retried with exponential backoff; any other status is definitive and
// returns a Page even when non-2xx. The error, when non-nil, is always a
// *FetchError.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	start := time.Now()
	defer func() {
		fetchDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 1; attempt <= f.retry.MaxAttempts(); attempt++ {
		if wait := f.retry.Backoff(attempt); wait > 0 {
			if err := sleepContext(ctx, wait); err != nil {
				return Page{}, classifyFetchError(err, 0)
			}
		}
		if attempt > 1 {
			fetchRetriesTotal.Inc()
			f.logger.Debug("retrying fetch",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt),
			)
		}
		fetchAttemptsTotal.Inc()

		page, err := f.fetchOnce(ctx, rawURL)
		if err != nil {
			lastErr = err
			if !f.retry.RetryError(err, attempt) {
				break
			}
			continue
		}
		if f.retry.RetryStatus(page.StatusCode) {
			lastErr = &FetchError{
				Kind:       ErrorKindHTTP,
				StatusCode: page.StatusCode,
				Message:    fmt.Sprintf("transient status %d", page.StatusCode),
			}
			continue
		}
		return page, nil
	}

	var fe *FetchError
	if errors.As(lastErr, &fe) {
		return Page{}, fe
	}
	return Page{}, classifyFetchError(lastErr, 0)
}

func (f *CollyFetcher) fetchOnce(ctx context.Context, rawURL string) (Page, error) {
	collector := f.base.Clone()

	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() { resultCh <- res })
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{page: Page{
			URL:        rawURL,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
		}})
	})
	collector.OnError(func(_ *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown collector error")
		}
		send(fetchResult{err: err})
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		return Page{}, classifyFetchError(ctx.Err(), 0)
	case err := <-done:
		if err != nil {
			return Page{}, classifyFetchError(err, 0)
		}
	}

	select {
	case res := <-resultCh:
		if res.err != nil {
			return Page{}, classifyFetchError(res.err, 0)
		}
		return res.page, nil
	default:
		return Page{}, &FetchError{Kind: ErrorKindConnection, Message: "fetch produced no response"}
	}
}

type fetchResult struct {
	page Page
	err  error
}

// classifyFetchError maps transport errors onto the fetch failure taxonomy.
func classifyFetchError(err error, statusCode int) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	kind := ErrorKindConnection
	message := "connection failed"
	if err != nil {
		message = err.Error()
	}
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = ErrorKindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = ErrorKindTimeout
	}
	return &FetchError{Kind: kind, StatusCode: statusCode, Message: message}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
