// Package hints calls the remote description-hint service. The service is
// opaque: title and category in, a list of suggestion strings out. It sits
// outside the checkout path, so every failure mode collapses to "no hints
// available" rather than an error the caller has to handle.
package hints

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bookstocknook/storefront/internal/domain"
	"github.com/bookstocknook/storefront/pkg/httpclient"
)

// Request is the payload sent to the hint service.
type Request struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// Response is the hint service's reply.
type Response struct {
	Hints []string `json:"hints"`
}

// Client calls the hint service through a retrying client wrapped in a
// circuit breaker, so a flapping upstream stops costing request latency.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a hint service client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	cfg := httpclient.DefaultConfig()
	cfg.Timeout = timeout

	return &Client{
		http: httpclient.NewCircuitBreakerClient(
			httpclient.New(cfg),
			httpclient.DefaultCircuitBreakerConfig("hints"),
			logger,
		),
		baseURL: baseURL,
		logger:  logger,
	}
}

// Generate asks the hint service for description suggestions. On any
// failure it returns an empty list and false; the caller decides how to
// surface the soft failure.
func (c *Client) Generate(ctx context.Context, title string, category domain.Category) ([]string, bool) {
	body, err := json.Marshal(Request{Title: title, Category: string(category)})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to encode hint request",
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	url := fmt.Sprintf("%s/v1/hints", c.baseURL)
	resp, err := c.http.Post(ctx, url, "application/json", bytes.NewReader(body))
	if err != nil {
		c.logger.WarnContext(ctx, "hint service unavailable",
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "hint service returned unexpected status",
			slog.Int("status", resp.StatusCode),
		)
		return nil, false
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.WarnContext(ctx, "failed to decode hint response",
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	return out.Hints, true
}
