package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func testClock() fixedClock {
	return fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestRobotsCheckerDisallowedPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := NewRobotsChecker(true, "test-bot/1.0", testClock(), zap.NewNop())

	require.False(t, checker.Allowed(context.Background(), srv.URL+"/private/page"))
}

func TestRobotsCheckerAllowedPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := NewRobotsChecker(true, "test-bot/1.0", testClock(), zap.NewNop())

	require.True(t, checker.Allowed(context.Background(), srv.URL+"/about"))
}

func TestRobotsCheckerFailsOpen(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	checker := NewRobotsChecker(true, "test-bot/1.0", testClock(), zap.NewNop())

	require.True(t, checker.Allowed(context.Background(), srv.URL+"/anything"))
}

func TestRobotsCheckerFailsOpenOnUnreachableHost(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // connection refused from here on

	checker := NewRobotsChecker(true, "test-bot/1.0", testClock(), zap.NewNop())

	require.True(t, checker.Allowed(context.Background(), srv.URL+"/page"))
}

func TestRobotsCheckerCachesPerDomain(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fetches.Add(1)
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
		}
	}))
	defer srv.Close()

	checker := NewRobotsChecker(true, "test-bot/1.0", testClock(), zap.NewNop())
	ctx := context.Background()

	require.True(t, checker.Allowed(ctx, srv.URL+"/a"))
	require.True(t, checker.Allowed(ctx, srv.URL+"/b"))
	require.True(t, checker.Allowed(ctx, srv.URL+"/c"))

	require.Equal(t, int32(1), fetches.Load(), "one robots.txt fetch per domain")
}

func TestRobotsCheckerCachesDecisionNotRules(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
		}
	}))
	defer srv.Close()

	checker := NewRobotsChecker(true, "test-bot/1.0", testClock(), zap.NewNop())
	ctx := context.Background()

	// First URL fixes the verdict for the whole domain.
	require.False(t, checker.Allowed(ctx, srv.URL+"/private/page"))
	require.False(t, checker.Allowed(ctx, srv.URL+"/public"))
}

func TestRobotsCheckerIgnoreMode(t *testing.T) {
	t.Parallel()

	checker := NewRobotsChecker(false, "test-bot/1.0", testClock(), zap.NewNop())

	require.True(t, checker.Allowed(context.Background(), "http://does-not-resolve.invalid/x"))
}

func TestRobotsCheckerUnparsableURL(t *testing.T) {
	t.Parallel()

	checker := NewRobotsChecker(true, "test-bot/1.0", testClock(), zap.NewNop())

	require.True(t, checker.Allowed(context.Background(), "not a url"))
}
