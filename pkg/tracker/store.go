package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store is the persistence backend behind the in-memory session state.
// Saves rewrite the full blob on every call; loads are best-effort, and a
// missing blob yields empty state with no error. Callers treat any returned
// error as log-and-continue: persistence must never block the in-memory
// operation.
type Store interface {
	SaveActivities(sessionID string, records []ActivityRecord) error
	LoadActivities(sessionID string) ([]ActivityRecord, error)
	SaveContent(sessionID string, content map[string]ContentEntry) error
	LoadContent(sessionID string) (map[string]ContentEntry, error)
	Clear(sessionID string) error
}

// activityMirror is the on-disk layout of the activity log.
type activityMirror struct {
	UserActivities []ActivityRecord `json:"user_activities"`
}

// FileStore mirrors session state to plain JSON files under a data directory,
// one pair of files per session. Concurrent writers to the same path are not
// guarded: last write wins.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create tracker data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) activitiesPath(sessionID string) string {
	return filepath.Join(s.dir, "activities_"+sessionID+".json")
}

func (s *FileStore) contentPath(sessionID string) string {
	return filepath.Join(s.dir, "content_"+sessionID+".json")
}

func (s *FileStore) SaveActivities(sessionID string, records []ActivityRecord) error {
	data, err := json.Marshal(activityMirror{UserActivities: records})
	if err != nil {
		return fmt.Errorf("marshal activities: %w", err)
	}
	return os.WriteFile(s.activitiesPath(sessionID), data, 0o644)
}

func (s *FileStore) LoadActivities(sessionID string) ([]ActivityRecord, error) {
	data, err := os.ReadFile(s.activitiesPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var mirror activityMirror
	if err := json.Unmarshal(data, &mirror); err != nil {
		return nil, fmt.Errorf("parse activity mirror: %w", err)
	}
	return mirror.UserActivities, nil
}

func (s *FileStore) SaveContent(sessionID string, content map[string]ContentEntry) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	return os.WriteFile(s.contentPath(sessionID), data, 0o644)
}

func (s *FileStore) LoadContent(sessionID string) (map[string]ContentEntry, error) {
	data, err := os.ReadFile(s.contentPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var content map[string]ContentEntry
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parse content mirror: %w", err)
	}
	return content, nil
}

func (s *FileStore) Clear(sessionID string) error {
	var firstErr error
	for _, path := range []string{s.activitiesPath(sessionID), s.contentPath(sessionID)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
