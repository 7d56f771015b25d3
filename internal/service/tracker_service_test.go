package service

import (
	"context"
	"testing"
	"time"

	"policy-compass-be/internal/repository/memory"
	"policy-compass-be/pkg/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestTrackerService(t *testing.T) (ITrackerService, *tracker.FileStore) {
	t.Helper()

	store, err := tracker.NewFileStore(t.TempDir())
	require.NoError(t, err)

	sessions := memory.NewSessionRepository(time.Minute, time.Minute)
	svc := NewTrackerService(sessions, store, nil, nil, nopLogger{}, nil, nil, time.Minute)
	return svc, store
}

func TestTrackAppendsInCallOrder(t *testing.T) {
	svc, store := newTestTrackerService(t)
	ctx := context.Background()

	actions := []struct{ action, page string }{
		{"uploaded", "Documents"},
		{"analyzed", "Policy Decoder"},
		{"compared", "Compare Bills"},
		{"chatted about", "Chat Memory"},
		{"exported", "Export Report"},
	}
	for _, a := range actions {
		svc.Track(ctx, "sess-order", a.action, a.page, map[string]interface{}{"document_name": "billA.pdf"})
	}

	session := svc.Session("sess-order")
	session.Lock()
	require.Len(t, session.Activities, len(actions))
	for i, a := range actions {
		assert.Equal(t, a.action, session.Activities[i].Action)
		assert.Equal(t, a.page, session.Activities[i].Page)
	}
	session.Unlock()

	// The mirror carries the full log in the same order.
	mirrored, err := store.LoadActivities("sess-order")
	require.NoError(t, err)
	require.Len(t, mirrored, len(actions))
	for i, a := range actions {
		assert.Equal(t, a.action, mirrored[i].Action)
	}
}

func TestSessionHydratesFromMirrorAfterRestart(t *testing.T) {
	svc, store := newTestTrackerService(t)
	ctx := context.Background()

	svc.Track(ctx, "sess-restart", "uploaded", "Documents", nil)
	svc.Track(ctx, "sess-restart", "analyzed", "Policy Decoder", nil)

	// A new service over the same store stands in for a restarted process
	// with a cold cache.
	sessions := memory.NewSessionRepository(time.Minute, time.Minute)
	restarted := NewTrackerService(sessions, store, nil, nil, nopLogger{}, nil, nil, time.Minute)

	session := restarted.Session("sess-restart")
	session.Lock()
	defer session.Unlock()
	require.Len(t, session.Activities, 2)
	assert.Equal(t, "uploaded", session.Activities[0].Action)
	assert.Equal(t, "analyzed", session.Activities[1].Action)
}

func TestStoreContentOverwritesSameKey(t *testing.T) {
	svc, store := newTestTrackerService(t)
	ctx := context.Background()

	svc.StoreContent(ctx, "sess-content", "decoder:billA.pdf", tracker.NewContentEntry(
		tracker.ContentTypeDocument, "old content", "old summary", ""))
	svc.StoreContent(ctx, "sess-content", "decoder:billA.pdf", tracker.NewContentEntry(
		tracker.ContentTypeDocument, "new content", "new summary", ""))

	session := svc.Session("sess-content")
	session.Lock()
	require.Len(t, session.Content, 1)
	assert.Equal(t, "new summary", session.Content["decoder:billA.pdf"].Summary)
	session.Unlock()

	mirrored, err := store.LoadContent("sess-content")
	require.NoError(t, err)
	require.Len(t, mirrored, 1)
	assert.Equal(t, "new summary", mirrored["decoder:billA.pdf"].Summary)
}
