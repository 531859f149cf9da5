package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

func TestNDJSONWritesOneLinePerResult(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.ndjson")
	s, err := NewNDJSON(path)
	require.NoError(t, err)

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Append(ctx, crawler.Result{
		URL:           "https://abc.co.jp/",
		Email:         "sales@abc.co.jp",
		CompanyName:   "ABC株式会社",
		HTTPStatus:    200,
		RobotsAllowed: true,
		LastCrawledAt: now,
		CrawlStatus:   crawler.StatusSuccess,
	}))
	require.NoError(t, s.Append(ctx, crawler.Result{
		URL:           "https://blocked.example/",
		RobotsAllowed: false,
		LastCrawledAt: now,
		CrawlStatus:   crawler.StatusBlocked,
		ErrorMessage:  "robots.txt disallows crawling",
	}))
	require.NoError(t, s.Close(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	var first crawler.Result
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, "sales@abc.co.jp", first.Email)
	require.Equal(t, "ABC株式会社", first.CompanyName)
	require.Equal(t, crawler.StatusSuccess, first.CrawlStatus)

	// Optional fields disappear for a blocked target.
	require.NotContains(t, lines[1], "httpStatus")
	require.NotContains(t, lines[1], "email")
	require.Contains(t, lines[1], `"robotsAllowed":false`)
}

func TestNDJSONKeepsJapaneseReadable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.ndjson")
	s, err := NewNDJSON(path)
	require.NoError(t, err)

	require.NoError(t, s.Append(context.Background(), crawler.Result{
		URL:         "https://abc.co.jp/",
		CompanyName: "ABC株式会社",
		CrawlStatus: crawler.StatusSuccess,
	}))
	require.NoError(t, s.Close(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	require.Contains(t, scanner.Text(), "ABC株式会社", "no unicode escaping")
}

func TestNDJSONTruncatesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.ndjson")
	require.NoError(t, os.WriteFile(path, []byte("stale contents\n"), 0o600))

	s, err := NewNDJSON(path)
	require.NoError(t, err)
	require.NoError(t, s.Close(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, data)
}
