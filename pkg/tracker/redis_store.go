package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the same JSON blobs as FileStore under redis keys, so
// session state survives a process restart when the app runs behind a shared
// redis. Blobs expire after the configured TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func activitiesKey(sessionID string) string {
	return "policycompass:activities:" + sessionID
}

func contentKey(sessionID string) string {
	return "policycompass:content:" + sessionID
}

func (s *RedisStore) SaveActivities(sessionID string, records []ActivityRecord) error {
	data, err := json.Marshal(activityMirror{UserActivities: records})
	if err != nil {
		return fmt.Errorf("marshal activities: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.rdb.Set(ctx, activitiesKey(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) LoadActivities(sessionID string) ([]ActivityRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	data, err := s.rdb.Get(ctx, activitiesKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
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

func (s *RedisStore) SaveContent(sessionID string, content map[string]ContentEntry) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.rdb.Set(ctx, contentKey(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) LoadContent(sessionID string) (map[string]ContentEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	data, err := s.rdb.Get(ctx, contentKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
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

func (s *RedisStore) Clear(sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.rdb.Del(ctx, activitiesKey(sessionID), contentKey(sessionID)).Err()
}
