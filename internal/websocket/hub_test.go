package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"policy-compass-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func (h *Hub) clientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func TestHubSlowClientIsUnregisteredWithoutPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	client := &Client{Hub: hub, SessionID: "sess", Send: make(chan []byte, 1)}
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.clientCount("sess") == 1
	}, time.Second, 5*time.Millisecond)

	msg := dto.ActivityFeedMessage{SessionId: "sess", Action: "uploaded", Page: "Documents"}

	// First send fills the one-slot buffer, the second overflows it and
	// must hand the client to the unregister path exactly once.
	hub.Send("sess", msg)
	hub.Send("sess", msg)

	require.Eventually(t, func() bool {
		return hub.clientCount("sess") == 0
	}, time.Second, 5*time.Millisecond)

	// A third send after removal must not reach the closed channel.
	hub.Send("sess", msg)

	first := <-client.Send
	assert.Contains(t, string(first), `"activity"`)
	_, open := <-client.Send
	assert.False(t, open, "send channel should be closed after unregister")
}

func TestRedisEnvelopeCarriesRawFeedMessage(t *testing.T) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "activity",
		"data": dto.ActivityFeedMessage{SessionId: "sess", Action: "analyzed", Page: "Policy Decoder"},
	})
	require.NoError(t, err)

	envelope := redisEnvelope("sess", data)

	// Parse exactly the way the subscribing instance does.
	var payload struct {
		TargetSessionID string          `json:"target_session_id"`
		Message         json.RawMessage `json:"message"`
	}
	require.NoError(t, json.Unmarshal(envelope, &payload))
	assert.Equal(t, "sess", payload.TargetSessionID)
	assert.JSONEq(t, string(data), string(payload.Message))

	// Remote tabs must receive the same JSON object local tabs get, not
	// an encoded string.
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload.Message, &decoded))
	assert.Equal(t, "activity", decoded["type"])
}
