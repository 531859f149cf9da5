package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"

	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
)

// PubSub publishes one JSON message per result so downstream enrichment
// pipelines can consume the stream without polling the output file.
type PubSub struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSub dials the project and binds the topic.
func NewPubSub(ctx context.Context, projectID, topicID string) (*PubSub, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("pubsub client: %w", err)
	}
	return &PubSub{
		client: client,
		topic:  client.Topic(topicID),
	}, nil
}

// Append implements Sink. Publishes synchronously; the batch coordinator
// already serializes appends, so in-order publishing costs nothing extra.
func (s *PubSub) Append(ctx context.Context, result crawler.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result for %s: %w", result.URL, err)
	}
	res := s.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"crawlStatus": string(result.CrawlStatus),
		},
	})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("publish result for %s: %w", result.URL, err)
	}
	return nil
}

// Close flushes the topic and releases the client.
func (s *PubSub) Close(context.Context) error {
	s.topic.Stop()
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close pubsub client: %w", err)
	}
	return nil
}
