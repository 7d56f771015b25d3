package memory

import (
	"testing"
	"time"

	"policy-compass-be/pkg/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_SaveAndGet(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)

	repo.Save(NewSession("abc"))

	got, found := repo.Get("abc")
	require.True(t, found)
	assert.Equal(t, "abc", got.ID)
	assert.Empty(t, got.Activities)
	assert.NotNil(t, got.Content)
	assert.NotNil(t, got.APIKeys)

	_, found = repo.Get("missing")
	assert.False(t, found)
}

func TestSessionRepository_GetOrCreate(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)

	s := repo.GetOrCreate("xyz")
	require.NotNil(t, s)

	s.Lock()
	s.Activities = append(s.Activities, tracker.NewActivityRecord("uploaded", "Documents", nil))
	s.Unlock()

	// Same pointer comes back, state intact
	again := repo.GetOrCreate("xyz")
	assert.Same(t, s, again)
	assert.Len(t, again.Activities, 1)
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo := NewSessionRepository(10*time.Millisecond, time.Minute)

	repo.Save(NewSession("short"))
	time.Sleep(30 * time.Millisecond)

	_, found := repo.Get("short")
	assert.False(t, found)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)

	repo.Save(NewSession("gone"))
	repo.Delete("gone")

	_, found := repo.Get("gone")
	assert.False(t, found)
}
