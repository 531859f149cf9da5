// Package batch runs the crawl engine over many targets with bounded
// concurrency and streams each result to a sink as it completes.
package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
	"github.com/leadgenjp/bizlead-crawler/internal/sink"
)

// Config bounds a batch run.
type Config struct {
	// Concurrency caps simultaneous in-flight targets.
	Concurrency int
	// MaxTargets optionally caps how many targets are processed; zero
	// means no cap.
	MaxTargets int
	// ExcludePatterns skip matching URLs before any network call.
	ExcludePatterns []string
}

// Coordinator fans a target list out to a fixed worker pool. Each target
// yields exactly one result; excluded targets yield none and are only
// counted. Sink writes are serialized through a single goroutine.
type Coordinator struct {
	crawler crawler.Crawler
	sink    sink.Sink
	filter  *crawler.URLFilter
	cfg     Config
	clock   crawler.Clock
	logger  *zap.Logger
}

// New builds a Coordinator.
func New(c crawler.Crawler, s sink.Sink, cfg Config, clock crawler.Clock, logger *zap.Logger) *Coordinator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Coordinator{
		crawler: c,
		sink:    s,
		filter:  crawler.NewURLFilter(cfg.ExcludePatterns),
		cfg:     cfg,
		clock:   clock,
		logger:  logger,
	}
}

// Run processes all targets and returns the aggregate summary plus the full
// result set in completion order. On cancellation, in-flight targets finish
// or fail fast, pending targets are abandoned, and every result already
// produced is retained and reflected in the summary.
func (c *Coordinator) Run(ctx context.Context, targets []crawler.Target) (crawler.Summary, []crawler.Result, error) {
	start := c.clock.Now()
	runID := uuid.NewString()

	admitted := make([]crawler.Target, 0, len(targets))
	skipped := 0
	for _, t := range targets {
		if c.filter.Excluded(t.URL) {
			skipped++
			c.logger.Debug("target excluded by pattern", zap.String("url", t.URL))
			continue
		}
		admitted = append(admitted, t)
	}
	if c.cfg.MaxTargets > 0 && len(admitted) > c.cfg.MaxTargets {
		admitted = admitted[:c.cfg.MaxTargets]
	}
	c.logger.Info("batch started",
		zap.String("run_id", runID),
		zap.Int("targets", len(admitted)),
		zap.Int("skipped", skipped),
		zap.Int("concurrency", c.cfg.Concurrency),
	)

	jobs := make(chan crawler.Target)
	resultCh := make(chan crawler.Result)

	go func() {
		defer close(jobs)
		for _, t := range admitted {
			select {
			case jobs <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < c.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				resultCh <- c.crawler.CrawlOne(ctx, t)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Single writer: sink appends are serialized, completion order only.
	results := make([]crawler.Result, 0, len(admitted))
	for r := range resultCh {
		results = append(results, r)
		if err := c.sink.Append(ctx, r); err != nil {
			// The in-memory stream stays authoritative; report and move on.
			c.logger.Error("sink append failed; result retained",
				zap.String("run_id", runID),
				zap.String("url", r.URL),
				zap.Error(err),
			)
		}
	}

	summary := summarize(results, skipped, c.clock.Now().Sub(start))
	c.logger.Info("batch finished",
		zap.String("run_id", runID),
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("blocked", summary.Blocked),
		zap.Int("skipped", summary.Skipped),
		zap.Int("emails_found", summary.EmailsFound),
		zap.Int("forms_found", summary.FormsFound),
		zap.Duration("elapsed", summary.Elapsed),
	)
	return summary, results, ctx.Err()
}
