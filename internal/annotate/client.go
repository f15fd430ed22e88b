package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable wraps every failure to reach the annotation service or to
// get a usable answer from it.
var ErrUnavailable = errors.New("annotation service unavailable")

// ClientConfig configures the annotation service client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client talks to a spaCy-backed annotation sidecar over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	stats      *LatencyStats
}

// NewClient builds a client. stats may be nil.
func NewClient(cfg ClientConfig, stats *LatencyStats) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		stats: stats,
	}
}

// annotateRequest is the body for POST /annotate.
type annotateRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

// Annotate sends text to the service and returns the annotated document.
// Statistics missing from the response are derived locally.
func (c *Client) Annotate(ctx context.Context, text string) (*Document, error) {
	start := time.Now()
	doc, err := c.annotate(ctx, text)
	if c.stats != nil {
		c.stats.Record(time.Since(start), err != nil)
	}
	return doc, err
}

func (c *Client) annotate(ctx context.Context, text string) (*Document, error) {
	body, err := json.Marshal(annotateRequest{Text: text, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/annotate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}

	doc, err := DecodeDocument(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if doc.Stats == nil {
		st := Describe(doc)
		doc.Stats = &st
	}
	return doc, nil
}

// Ping checks that the service answers GET /health.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// Stats returns the latency tracker, or nil if none was configured.
func (c *Client) Stats() *LatencyStats {
	return c.stats
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
