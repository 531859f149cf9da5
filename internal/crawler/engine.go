package crawler

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Engine sequences one target through robots check, fetch, and extraction.
// Every call to CrawlOne terminates in a fully populated Result; a batch can
// never lose a target to a fault in one item.
type Engine struct {
	robots    RobotsPolicy
	fetcher   Fetcher
	extractor Extractor
	clock     Clock
	logger    *zap.Logger
}

// NewEngine wires the per-target pipeline.
func NewEngine(robots RobotsPolicy, fetcher Fetcher, extractor Extractor, clock Clock, logger *zap.Logger) *Engine {
	return &Engine{
		robots:    robots,
		fetcher:   fetcher,
		extractor: extractor,
		clock:     clock,
		logger:    logger,
	}
}

// CrawlOne implements Crawler. It never follows links discovered on the
// page: one fetch per input, always.
func (e *Engine) CrawlOne(ctx context.Context, target Target) (result Result) {
	defer func() {
		// A panic in any stage still yields one result for this target.
		if r := recover(); r != nil {
			e.logger.Error("crawl panic recovered",
				zap.String("url", target.URL),
				zap.Any("panic", r),
			)
			result = e.finish(Result{
				URL:           target.URL,
				RobotsAllowed: true,
				CrawlStatus:   StatusError,
				ErrorMessage:  fmt.Sprintf("internal error: %v", r),
			})
		}
	}()

	if !e.robots.Allowed(ctx, target.URL) {
		e.logger.Info("robots.txt disallows crawling", zap.String("url", target.URL))
		return e.finish(Result{
			URL:           target.URL,
			RobotsAllowed: false,
			CrawlStatus:   StatusBlocked,
			ErrorMessage:  "robots.txt disallows crawling",
		})
	}

	page, err := e.fetcher.Fetch(ctx, target.URL)
	if err != nil {
		fe := classifyFetchError(err, 0)
		e.logger.Warn("fetch failed",
			zap.String("url", target.URL),
			zap.String("kind", string(fe.Kind)),
			zap.String("error", fe.Message),
		)
		return e.finish(Result{
			URL:           target.URL,
			HTTPStatus:    fe.StatusCode,
			RobotsAllowed: true,
			CrawlStatus:   StatusError,
			ErrorMessage:  fe.Error(),
		})
	}

	finalURL := page.FinalURL
	if finalURL == "" {
		finalURL = target.URL
	}
	extraction := e.extractor.Extract(page.Body, finalURL, target.CompanyName)

	result = Result{
		URL:            finalURL,
		Email:          extraction.Email,
		InquiryFormURL: extraction.InquiryFormURL,
		CompanyName:    extraction.CompanyName,
		Industry:       extraction.Industry,
		HTTPStatus:     page.StatusCode,
		RobotsAllowed:  true,
		CrawlStatus:    StatusSuccess,
	}
	if !isSuccessStatus(page.StatusCode) {
		result.CrawlStatus = StatusError
		result.ErrorMessage = fmt.Sprintf("http status %d", page.StatusCode)
	}
	if result.Email != "" {
		emailsFoundTotal.Inc()
	}
	if result.InquiryFormURL != "" {
		formsFoundTotal.Inc()
	}
	e.logger.Debug("crawl finished",
		zap.String("url", finalURL),
		zap.Int("status", page.StatusCode),
		zap.Bool("email", result.Email != ""),
		zap.Bool("form", result.InquiryFormURL != ""),
	)
	return e.finish(result)
}

func (e *Engine) finish(r Result) Result {
	r.LastCrawledAt = e.clock.Now()
	targetsTotal.WithLabelValues(string(r.CrawlStatus)).Inc()
	return r
}

func isSuccessStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
