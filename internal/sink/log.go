package sink

import (
	"context"

	"go.uber.org/zap"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

// Log emits one structured log line per result. Useful during development
// or audits where no durable sink is configured.
type Log struct {
	logger *zap.Logger
}

// NewLog wires a zap logger to the sink interface.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// Append implements Sink.
func (s *Log) Append(_ context.Context, r crawler.Result) error {
	s.logger.Info("crawl result",
		zap.String("url", r.URL),
		zap.String("status", string(r.CrawlStatus)),
		zap.Int("http_status", r.HTTPStatus),
		zap.String("email", r.Email),
		zap.String("form", r.InquiryFormURL),
		zap.String("company", r.CompanyName),
		zap.String("industry", r.Industry),
		zap.String("error", r.ErrorMessage),
	)
	return nil
}

// Close implements Sink; it performs no action.
func (s *Log) Close(context.Context) error { return nil }
