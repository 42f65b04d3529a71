// Package fcm implements push delivery over the Firebase Cloud Messaging
// legacy HTTP API.
package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Skarbonka1/serwerfinal/internal/config"
	"github.com/Skarbonka1/serwerfinal/internal/notify"
	"github.com/sony/gobreaker"
)

// The legacy send endpoint rejects requests with more than 500
// registration ids.
const maxTokensPerRequest = 500

// Client sends push messages through the FCM legacy HTTP API. All calls
// to the API go through a circuit breaker so a broken upstream does not
// tie up notification workers.
type Client struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

var _ notify.Notifier = (*Client)(nil)

// sendRequest is the legacy API request body.
type sendRequest struct {
	RegistrationIDs []string     `json:"registration_ids"`
	Notification    notification `json:"notification"`
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// sendResponse is the subset of the legacy API response we need.
type sendResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// NewClient creates an FCM client from the push configuration.
func NewClient(cfg config.PushConfig, logger *slog.Logger) *Client {
	log := logger.With("component", "fcm_client")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "FCMBreaker",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	})

	return &Client{
		endpoint:  cfg.Endpoint,
		serverKey: cfg.ServerKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		breaker: breaker,
		logger:  log,
	}
}

// Send delivers the message to the given device tokens, splitting them
// into API-sized batches. Per-device rejections are reported through the
// Result counts; the error return means no batch went through at all.
func (c *Client) Send(
	ctx context.Context,
	tokens []string,
	title, body string,
) (notify.Result, error) {
	var result notify.Result
	var lastErr error

	for start := 0; start < len(tokens); start += maxTokensPerRequest {
		end := start + maxTokensPerRequest
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[start:end]

		resp, err := c.sendBatch(ctx, batch, title, body)
		if err != nil {
			c.logger.Error("batch delivery failed",
				"batch_size", len(batch),
				"error", err)
			result.FailureCount += len(batch)
			lastErr = err
			continue
		}

		result.SuccessCount += resp.Success
		result.FailureCount += resp.Failure
	}

	if result.SuccessCount == 0 && lastErr != nil {
		return result, lastErr
	}
	return result, nil
}

func (c *Client) sendBatch(
	ctx context.Context,
	tokens []string,
	title, body string,
) (*sendResponse, error) {
	payload, err := json.Marshal(sendRequest{
		RegistrationIDs: tokens,
		Notification:    notification{Title: title, Body: body},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, payload)
	})
	if err != nil {
		return nil, err
	}

	return resp.(*sendResponse), nil
}

func (c *Client) doRequest(ctx context.Context, payload []byte) (*sendResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d from push endpoint", resp.StatusCode)
	}

	var decoded sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &decoded, nil
}
