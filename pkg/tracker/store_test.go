package tracker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	records := []ActivityRecord{
		record("2026-08-30 09:00:00", "analyzed", "Policy Decoder", map[string]any{"document_name": "a.pdf"}),
		record("2026-08-30 09:01:00", "compared", "Compare Bills", nil),
	}
	require.NoError(t, store.SaveActivities("s1", records))

	loaded, err := store.LoadActivities("s1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "analyzed", loaded[0].Action)
	assert.Equal(t, "Compare Bills", loaded[1].Page)

	content := map[string]ContentEntry{
		"decoder:a.pdf": NewContentEntry(ContentTypeDocument, "full text", "short", ""),
	}
	require.NoError(t, store.SaveContent("s1", content))

	loadedContent, err := store.LoadContent("s1")
	require.NoError(t, err)
	require.Len(t, loadedContent, 1)
	assert.Equal(t, ContentTypeDocument, loadedContent["decoder:a.pdf"].Type)
}

func TestFileStoreMirrorLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.SaveActivities("s1", []ActivityRecord{
		record("2026-08-30 09:00:00", "analyzed", "Policy Decoder", nil),
	}))

	raw, err := os.ReadFile(filepath.Join(dir, "activities_s1.json"))
	require.NoError(t, err)

	var mirror map[string]any
	require.NoError(t, json.Unmarshal(raw, &mirror))
	_, ok := mirror["user_activities"]
	assert.True(t, ok, "mirror must keep the user_activities envelope")
}

func TestFileStoreMissingIsEmpty(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	records, err := store.LoadActivities("nope")
	require.NoError(t, err)
	assert.Empty(t, records)

	content, err := store.LoadContent("nope")
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestFileStoreCorruptMirrorErrors(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "activities_s1.json"), []byte("{not json"), 0o644))
	_, err = store.LoadActivities("s1")
	assert.Error(t, err)
}

func TestFileStoreClearRemovesMirrors(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.SaveActivities("s1", []ActivityRecord{record("2026-08-30 09:00:00", "a", "p", nil)}))
	require.NoError(t, store.SaveContent("s1", map[string]ContentEntry{"x": NewContentEntry("document", "c", "", "")}))

	require.NoError(t, store.Clear("s1"))

	_, err = os.Stat(filepath.Join(dir, "activities_s1.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "content_s1.json"))
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-clean session is not an error.
	assert.NoError(t, store.Clear("s1"))
}
