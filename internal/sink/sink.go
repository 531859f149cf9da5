// Package sink provides append-only destinations for crawl results. The
// engine is sink-agnostic: anything that can accept one row-shaped record at
// a time can consume a batch stream.
package sink

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

// Sink records crawl results. Append is called once per result as it
// completes; implementations must tolerate concurrent Close only after all
// Appends have returned. Appends are serialized by the batch coordinator.
type Sink interface {
	Append(ctx context.Context, result crawler.Result) error
	Close(ctx context.Context) error
}

// Multi fans out every result to several sinks. A failing sink is logged
// and skipped for that record; the remaining sinks still receive it, so an
// unreachable export target never discards fetched data.
type Multi struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewMulti builds a fan-out sink.
func NewMulti(logger *zap.Logger, sinks ...Sink) *Multi {
	return &Multi{sinks: sinks, logger: logger}
}

// Append implements Sink.
func (m *Multi) Append(ctx context.Context, result crawler.Result) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Append(ctx, result); err != nil {
			m.logger.Error("sink append failed",
				zap.String("url", result.URL),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink, returning the joined errors.
func (m *Multi) Close(ctx context.Context) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
