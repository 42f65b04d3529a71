package fcm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Skarbonka1/serwerfinal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(endpoint string) *Client {
	return NewClient(config.PushConfig{
		Endpoint:       endpoint,
		ServerKey:      "test-key",
		TimeoutSeconds: 5,
	}, discardLogger())
}

func TestClient_Send(t *testing.T) {
	var gotAuth string
	var gotRequest sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		_ = json.NewEncoder(w).Encode(sendResponse{Success: 2, Failure: 1})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Send(
		context.Background(),
		[]string{"t1", "t2", "t3"},
		"Nowe zadanie",
		"Przegląd maszyn",
	)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, "key=test-key", gotAuth)
	assert.Equal(t, []string{"t1", "t2", "t3"}, gotRequest.RegistrationIDs)
	assert.Equal(t, "Nowe zadanie", gotRequest.Notification.Title)
	assert.Equal(t, "Przegląd maszyn", gotRequest.Notification.Body)
}

func TestClient_SendSplitsLargeTokenSets(t *testing.T) {
	var batchSizes []int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		batchSizes = append(batchSizes, len(req.RegistrationIDs))
		_ = json.NewEncoder(w).Encode(sendResponse{Success: len(req.RegistrationIDs)})
	}))
	defer server.Close()

	tokens := make([]string, 750)
	for i := range tokens {
		tokens[i] = "tok"
	}

	client := newTestClient(server.URL)
	result, err := client.Send(context.Background(), tokens, "t", "b")
	require.NoError(t, err)

	assert.Equal(t, []int{500, 250}, batchSizes)
	assert.Equal(t, 750, result.SuccessCount)
}

func TestClient_SendUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Send(context.Background(), []string{"t1", "t2"}, "t", "b")

	assert.Error(t, err)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 2, result.FailureCount)
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	for i := 0; i < 10; i++ {
		_, err := client.Send(context.Background(), []string{"t"}, "t", "b")
		assert.Error(t, err)
	}

	// The breaker trips after four consecutive failures, so later sends
	// never reach the upstream.
	assert.Equal(t, 4, requests)
}
