package sink

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

// pgPool is the subset of pgxpool.Pool the sink uses; narrowed so tests can
// substitute a pgxmock pool.
type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// Postgres persists one row per result.
// Expected schema:
//
//	CREATE TABLE crawl_results (
//	    id BIGSERIAL PRIMARY KEY,
//	    url TEXT NOT NULL,
//	    email TEXT,
//	    inquiry_form_url TEXT,
//	    company_name TEXT,
//	    industry TEXT,
//	    http_status INT,
//	    robots_allowed BOOLEAN NOT NULL,
//	    last_crawled_at TIMESTAMPTZ NOT NULL,
//	    crawl_status TEXT NOT NULL,
//	    error_message TEXT
//	);
type Postgres struct {
	pool pgPool
}

const insertResultSQL = `
	INSERT INTO crawl_results (
		url, email, inquiry_form_url, company_name, industry,
		http_status, robots_allowed, last_crawled_at, crawl_status, error_message
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// NewPostgres connects a pool and verifies it with a ping.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool (tests use a pgxmock pool).
func NewPostgresFromPool(pool pgPool) *Postgres {
	return &Postgres{pool: pool}
}

// Append implements Sink.
func (s *Postgres) Append(ctx context.Context, r crawler.Result) error {
	_, err := s.pool.Exec(ctx, insertResultSQL,
		r.URL,
		nullable(r.Email),
		nullable(r.InquiryFormURL),
		nullable(r.CompanyName),
		nullable(r.Industry),
		nullableInt(r.HTTPStatus),
		r.RobotsAllowed,
		r.LastCrawledAt,
		string(r.CrawlStatus),
		nullable(r.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("insert result for %s: %w", r.URL, err)
	}
	return nil
}

// Close implements Sink.
func (s *Postgres) Close(context.Context) error {
	s.pool.Close()
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(i int) any {
	if i == 0 {
		return nil
	}
	return i
}
