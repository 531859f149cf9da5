package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

const robotsFetchTimeout = 10 * time.Second

// robotsDecision is the cached verdict for one domain. A batch run is short
// lived, so entries are never invalidated.
type robotsDecision struct {
	allowed   bool
	checkedAt time.Time
}

// RobotsChecker enforces robots.txt directives with a per-domain decision
// cache. Any failure to obtain or parse robots.txt resolves to allowed
// (fail-open) so one broken robots.txt cannot stall a batch. Safe for
// concurrent use; duplicate population of the same domain is benign.
type RobotsChecker struct {
	client    *http.Client
	cache     sync.Map // domain key -> robotsDecision
	userAgent string
	clock     Clock
	logger    *zap.Logger
}

// NewRobotsChecker builds a RobotsPolicy for the given policy mode. The
// "ignore" mode bypasses robots.txt entirely.
func NewRobotsChecker(respect bool, userAgent string, clock Clock, logger *zap.Logger) RobotsPolicy {
	if !respect {
		return &allowAllPolicy{}
	}
	return &RobotsChecker{
		client: &http.Client{
			Timeout: robotsFetchTimeout,
		},
		userAgent: userAgent,
		clock:     clock,
		logger:    logger,
	}
}

// Allowed implements RobotsPolicy. The first URL checked for a domain fixes
// the cached decision for every later URL under the same scheme+host.
func (r *RobotsChecker) Allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return true
	}
	key := domainKey(parsed)
	if cached, ok := r.cache.Load(key); ok {
		return cached.(robotsDecision).allowed
	}

	allowed, err := r.check(ctx, parsed)
	if err != nil {
		r.logger.Warn("robots.txt check failed; failing open",
			zap.String("domain", key),
			zap.Error(err),
		)
		robotsFailOpenTotal.Inc()
		allowed = true
	}
	if !allowed {
		robotsDeniedTotal.Inc()
	}
	r.cache.Store(key, robotsDecision{allowed: allowed, checkedAt: r.clock.Now()})
	return allowed
}

func (r *RobotsChecker) check(ctx context.Context, parsed *url.URL) (bool, error) {
	robotsURL := &url.URL{
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   "/robots.txt",
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return true, fmt.Errorf("new robots request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	resp, err := r.client.Do(req)
	if err != nil {
		return true, fmt.Errorf("fetch robots: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			r.logger.Debug("close robots body", zap.Error(cerr))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return true, fmt.Errorf("robots status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return true, fmt.Errorf("read robots body: %w", err)
	}
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return true, fmt.Errorf("parse robots: %w", err)
	}
	group := data.FindGroup(r.userAgent)
	if group == nil {
		return true, nil
	}
	path := parsed.Path
	if path == "" {
		path = "/"
	}
	return group.Test(path), nil
}

func domainKey(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}

type allowAllPolicy struct{}

func (a *allowAllPolicy) Allowed(context.Context, string) bool { return true }
