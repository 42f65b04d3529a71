package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateDeadlineRequest_TriState(t *testing.T) {
	t.Run("absent field", func(t *testing.T) {
		var req UpdateDeadlineRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
		assert.False(t, req.Deadline.Set)
	})

	t.Run("explicit null", func(t *testing.T) {
		var req UpdateDeadlineRequest
		require.NoError(t, json.Unmarshal([]byte(`{"deadline": null}`), &req))
		assert.True(t, req.Deadline.Set)
		assert.Nil(t, req.Deadline.Value)
	})

	t.Run("timestamp", func(t *testing.T) {
		var req UpdateDeadlineRequest
		require.NoError(t,
			json.Unmarshal([]byte(`{"deadline": "2026-09-01T12:00:00Z"}`), &req))
		assert.True(t, req.Deadline.Set)
		require.NotNil(t, req.Deadline.Value)
		assert.Equal(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), *req.Deadline.Value)
	})

	t.Run("malformed value", func(t *testing.T) {
		var req UpdateDeadlineRequest
		assert.Error(t, json.Unmarshal([]byte(`{"deadline": "wczoraj"}`), &req))
	})
}
