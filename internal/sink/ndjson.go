package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

// NDJSON writes one JSON-serialized result per line. Each Append is flushed
// through the OS file so partial progress survives a mid-run failure; the
// file is the durable source of truth when remote sinks misbehave.
type NDJSON struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

// NewNDJSON creates (or truncates) the output file.
func NewNDJSON(path string) (*NDJSON, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open ndjson output %s: %w", path, err)
	}
	encoder := json.NewEncoder(file)
	// Keep Japanese text readable in the output file.
	encoder.SetEscapeHTML(false)
	return &NDJSON{file: file, encoder: encoder}, nil
}

// Append implements Sink; the encoder terminates every record with \n.
func (s *NDJSON) Append(_ context.Context, result crawler.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.encoder.Encode(result); err != nil {
		return fmt.Errorf("encode result for %s: %w", result.URL, err)
	}
	return nil
}

// Close flushes and closes the file.
func (s *NDJSON) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close ndjson output: %w", err)
	}
	return nil
}
