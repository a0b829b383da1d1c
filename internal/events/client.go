package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATS subjects emitted by the pipeline.
const (
	SubjectGroupCompleted  = "sift.batch.group.completed"
	SubjectBatchCompleted  = "sift.batch.completed"
	SubjectCandidateStored = "sift.candidate.stored"
)

// FileResult pairs a batch item's file name with its final disposition.
type FileResult struct {
	FileName string `json:"file_name"`
	Success  bool   `json:"success"`
}

// GroupCompleted is emitted after each scheduler group fully resolves.
type GroupCompleted struct {
	Group     int          `json:"group"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Files     []FileResult `json:"files"`
	Timestamp time.Time    `json:"timestamp"`
}

// BatchCompleted is emitted once per batch with aggregate counts.
type BatchCompleted struct {
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Timestamp time.Time `json:"timestamp"`
}

// CandidateStored is emitted after a candidate row is persisted.
type CandidateStored struct {
	CandidateID string    `json:"candidate_id"`
	TeamID      string    `json:"team_id"`
	FileName    string    `json:"file_name"`
	Score       int       `json:"score"`
	Timestamp   time.Time `json:"timestamp"`
}

type Client struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

// Publish marshals data and publishes it. A nil Client is a no-op so the
// pipeline runs with eventing disabled.
func (c *Client) Publish(subject string, data any) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	c.conn.Close()
}
