package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

const webhookTimeout = 30 * time.Second

// Webhook appends results to a remote script endpoint (an Apps-Script-style
// deployment) that accepts either a single record or an array of records per
// call. Those endpoints answer successful writes with a redirect, so any
// final status below 400 counts as success.
type Webhook struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewWebhook builds the sink for the given endpoint URL.
func NewWebhook(endpoint string, logger *zap.Logger) *Webhook {
	return &Webhook{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: webhookTimeout,
		},
		logger: logger,
	}
}

// Append implements Sink, posting one record.
func (s *Webhook) Append(ctx context.Context, result crawler.Result) error {
	return s.post(ctx, result)
}

// SendBatch posts every result as a single JSON array in one call.
func (s *Webhook) SendBatch(ctx context.Context, results []crawler.Result) error {
	if len(results) == 0 {
		return nil
	}
	return s.post(ctx, results)
}

// Close implements Sink; the endpoint needs no teardown.
func (s *Webhook) Close(context.Context) error { return nil }

func (s *Webhook) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to webhook: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Debug("close webhook response body", zap.Error(cerr))
		}
	}()
	// 3xx means the script accepted the write and redirected.
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook rejected payload: status %d", resp.StatusCode)
	}
	return nil
}
