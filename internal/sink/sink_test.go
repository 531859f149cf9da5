package sink

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

type memorySink struct {
	mu        sync.Mutex
	results   []crawler.Result
	appendErr error
	closeErr  error
	closed    bool
}

func (s *memorySink) Append(_ context.Context, r crawler.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.results = append(s.results, r)
	return nil
}

func (s *memorySink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.closeErr
}

func TestMultiFansOutToAllSinks(t *testing.T) {
	t.Parallel()

	a, b := &memorySink{}, &memorySink{}
	m := NewMulti(zap.NewNop(), a, b)

	r := crawler.Result{URL: "https://x.example/", CrawlStatus: crawler.StatusSuccess}
	require.NoError(t, m.Append(context.Background(), r))

	require.Len(t, a.results, 1)
	require.Len(t, b.results, 1)
}

func TestMultiIsolatesFailingSink(t *testing.T) {
	t.Parallel()

	broken := &memorySink{appendErr: errors.New("down")}
	healthy := &memorySink{}
	m := NewMulti(zap.NewNop(), broken, healthy)

	err := m.Append(context.Background(), crawler.Result{URL: "https://x.example/"})
	require.Error(t, err)
	require.Len(t, healthy.results, 1, "later sinks still receive the record")
}

func TestMultiCloseClosesEverything(t *testing.T) {
	t.Parallel()

	a := &memorySink{closeErr: errors.New("close failed")}
	b := &memorySink{}
	m := NewMulti(zap.NewNop(), a, b)

	err := m.Close(context.Background())
	require.Error(t, err)
	require.True(t, a.closed)
	require.True(t, b.closed)
}
