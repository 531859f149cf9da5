// Package loader reads crawl targets from exported spreadsheet files.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

// Column headers recognized in exports, checked in order. Japanese headers
// come first because the primary input sheets use them.
var (
	urlHeaders     = []string{"トップページURL", "URL", "Url", "url", "Homepage", "homepage"}
	companyHeaders = []string{"法人名", "Company", "companyName", "company_name"}
)

// CSV loads targets from a CSV export of the input sheet.
type CSV struct {
	logger *zap.Logger
}

// NewCSV builds the loader.
func NewCSV(logger *zap.Logger) *CSV {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSV{logger: logger}
}

// Load reads the file and returns one target per usable row. Rows with a
// blank URL cell are dropped. limit caps the number of targets when positive.
func (l *CSV) Load(path string, limit int) ([]crawler.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	targets, err := l.parse(f, limit)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return targets, nil
}

func (l *CSV) parse(r io.Reader, limit int) ([]crawler.Target, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	urlCol, companyCol := locateColumns(header)
	if urlCol < 0 {
		return nil, fmt.Errorf("no URL column found in header %v", header)
	}

	var targets []crawler.Target
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if urlCol >= len(row) {
			continue
		}
		rawURL := strings.TrimSpace(row[urlCol])
		if rawURL == "" {
			continue
		}
		t := crawler.Target{URL: normalizeURL(rawURL)}
		if companyCol >= 0 && companyCol < len(row) {
			t.CompanyName = strings.TrimSpace(row[companyCol])
		}
		targets = append(targets, t)
		if limit > 0 && len(targets) >= limit {
			l.logger.Info("target limit reached", zap.Int("limit", limit))
			break
		}
	}
	l.logger.Info("targets loaded", zap.Int("count", len(targets)))
	return targets, nil
}

func locateColumns(header []string) (urlCol, companyCol int) {
	urlCol, companyCol = -1, -1
	for i, cell := range header {
		name := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		if urlCol < 0 && matchesAny(name, urlHeaders) {
			urlCol = i
		}
		if companyCol < 0 && matchesAny(name, companyHeaders) {
			companyCol = i
		}
	}
	if urlCol >= 0 {
		return urlCol, companyCol
	}
	// Loose fallback for renamed sheet columns like "会社URL" or "Homepage Link".
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if strings.Contains(name, "url") || strings.Contains(name, "homepage") {
			return i, companyCol
		}
	}
	return -1, companyCol
}

func matchesAny(name string, candidates []string) bool {
	for _, c := range candidates {
		if name == c {
			return true
		}
	}
	return false
}

// normalizeURL prefixes bare hostnames so the fetcher always sees a scheme.
func normalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
