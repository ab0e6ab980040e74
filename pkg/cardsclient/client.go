/**
 * @description
 * This package provides a client for forwarding normalized card events to the
 * downstream cards service. It encapsulates the logic for making the outbound
 * HTTP requests and classifying transport failures.
 *
 * Key features:
 * - Manages the cards service base URL and shared-secret API key.
 * - Provides one method per forwarding operation (create card, update status).
 * - Classifies transport failures into the relay's error taxonomy so the
 *   HTTP layer can map them to status codes.
 *
 * @dependencies
 * - bytes, context, encoding/json, fmt, io, net, net/http, time: Standard Go libraries.
 * - The service's internal domain package for event shapes and error sentinels.
 */
package cardsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/transfa/card-webhook-service/internal/domain"
)

// ForwardResult carries the raw outcome of a successful forwarding call. The
// caller decides how to treat the downstream status code.
type ForwardResult struct {
	StatusCode int
	Body       []byte
}

// Success reports whether the downstream accepted the event.
func (r *ForwardResult) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client is a client for the cards service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new cards service client. The timeout bounds every
// forwarding call; there are no retries.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateCard forwards a new card event to the cards service.
func (c *Client) CreateCard(ctx context.Context, event domain.NewCardEvent) (*ForwardResult, error) {
	return c.post(ctx, c.baseURL, event, false)
}

// UpdateCardStatus forwards a status update for an existing card. The shared
// secret header is attached so the cards service can authenticate the update.
func (c *Client) UpdateCardStatus(ctx context.Context, cardID string, event domain.StatusUpdateEvent) (*ForwardResult, error) {
	if cardID == "" {
		return nil, fmt.Errorf("%w: cardId is required for status updates", domain.ErrMissingIdentifier)
	}
	url := fmt.Sprintf("%s/%s/status", c.baseURL, cardID)
	return c.post(ctx, url, event, true)
}

// post is a helper to make forwarding requests to the cards service.
func (c *Client) post(ctx context.Context, url string, body any, withAPIKey bool) (*ForwardResult, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request body: %v", domain.ErrForward, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create http request: %v", domain.ErrForward, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if withAPIKey && c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	log.Printf("Forwarding to cards service: POST %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrForward, err)
	}

	return &ForwardResult{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// classifyTransportError maps a transport failure onto the relay's error
// taxonomy. Timeouts and unreachable hosts get their own sentinels so the
// HTTP layer can answer 504 and 503 respectively.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrForward, err)
}
