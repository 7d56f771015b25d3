package service

import (
	"context"
	"time"

	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/logger"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/repository"
	"policy-compass-be/internal/repository/memory"
	"policy-compass-be/internal/websocket"
	"policy-compass-be/pkg/events"
	pktNats "policy-compass-be/pkg/nats"
	"policy-compass-be/pkg/tracker"

	"github.com/google/uuid"
)

type ITrackerService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	Track(ctx context.Context, sessionID, action, page string, details map[string]interface{})
	StoreContent(ctx context.Context, sessionID, key string, entry tracker.ContentEntry)
	ActivitySummary(sessionID string) string
	ContentSummary(sessionID string) string
	ClearSession(ctx context.Context, sessionID string) error
	Session(sessionID string) *memory.Session
	APIKey(sessionID, name, fallback string) string
}

type trackerService struct {
	sessions     *memory.SessionRepository
	store        tracker.Store
	documentRepo repository.DocumentRepository
	chunkRepo    repository.ChunkRepository
	logger       logger.ILogger
	natsPub      *pktNats.Publisher
	hub          *websocket.Hub
	sessionTTL   time.Duration
}

func NewTrackerService(
	sessions *memory.SessionRepository,
	store tracker.Store,
	documentRepo repository.DocumentRepository,
	chunkRepo repository.ChunkRepository,
	sysLogger logger.ILogger,
	natsPub *pktNats.Publisher,
	hub *websocket.Hub,
	sessionTTL time.Duration,
) ITrackerService {
	return &trackerService{
		sessions:     sessions,
		store:        store,
		documentRepo: documentRepo,
		chunkRepo:    chunkRepo,
		logger:       sysLogger,
		natsPub:      natsPub,
		hub:          hub,
		sessionTTL:   sessionTTL,
	}
}

func (s *trackerService) CreateSession(_ context.Context) (*dto.CreateSessionResponse, error) {
	sessionID := uuid.NewString()
	s.sessions.Save(memory.NewSession(sessionID))

	token, err := serverutils.IssueSessionToken(sessionID, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tracker", "Session created", map[string]interface{}{"session_id": sessionID})

	return &dto.CreateSessionResponse{
		SessionId: sessionID,
		Token:     token,
	}, nil
}

// Session returns the in-memory state, hydrating from the persistence
// mirrors when the process restarted since the session token was issued.
func (s *trackerService) Session(sessionID string) *memory.Session {
	session, found := s.sessions.Get(sessionID)
	if found {
		return session
	}

	session = s.sessions.GetOrCreate(sessionID)
	session.Lock()
	defer session.Unlock()

	if activities, err := s.store.LoadActivities(sessionID); err == nil && len(activities) > 0 {
		session.Activities = activities
	}
	if content, err := s.store.LoadContent(sessionID); err == nil && len(content) > 0 {
		session.Content = content
	}
	return session
}

func (s *trackerService) Track(ctx context.Context, sessionID, action, page string, details map[string]interface{}) {
	session := s.Session(sessionID)

	record := tracker.NewActivityRecord(action, page, details)

	session.Lock()
	session.Activities = append(session.Activities, record)
	snapshot := make([]tracker.ActivityRecord, len(session.Activities))
	copy(snapshot, session.Activities)
	session.Unlock()

	// Full-overwrite mirror write; persistence failure never fails the
	// request.
	if err := s.store.SaveActivities(sessionID, snapshot); err != nil {
		s.logger.Warn("Tracker", "Failed to persist activity mirror", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	if s.natsPub != nil {
		evt := events.NewBaseEvent(events.ActivityTracked, map[string]interface{}{
			"session_id": sessionID,
			"action":     action,
			"page":       page,
			"details":    record.Details,
		})
		if err := s.natsPub.Publish(ctx, evt); err != nil {
			s.logger.Warn("Tracker", "Failed to publish activity event", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.hub != nil {
		s.hub.Send(sessionID, dto.ActivityFeedMessage{
			SessionId: sessionID,
			Action:    action,
			Page:      page,
			Timestamp: record.Timestamp,
			Details:   record.Details,
		})
	}
}

func (s *trackerService) StoreContent(_ context.Context, sessionID, key string, entry tracker.ContentEntry) {
	session := s.Session(sessionID)

	session.Lock()
	// Same key overwrites: re-analysis replaces the previous entry.
	session.Content[key] = entry
	snapshot := make(map[string]tracker.ContentEntry, len(session.Content))
	for k, v := range session.Content {
		snapshot[k] = v
	}
	session.Unlock()

	if err := s.store.SaveContent(sessionID, snapshot); err != nil {
		s.logger.Warn("Tracker", "Failed to persist content mirror", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

func (s *trackerService) ActivitySummary(sessionID string) string {
	session := s.Session(sessionID)

	session.Lock()
	snapshot := make([]tracker.ActivityRecord, len(session.Activities))
	copy(snapshot, session.Activities)
	session.Unlock()

	return tracker.SessionSummary(snapshot)
}

func (s *trackerService) ContentSummary(sessionID string) string {
	session := s.Session(sessionID)

	session.Lock()
	snapshot := make(map[string]tracker.ContentEntry, len(session.Content))
	for k, v := range session.Content {
		snapshot[k] = v
	}
	session.Unlock()

	return tracker.ContentSummary(snapshot)
}

func (s *trackerService) ClearSession(ctx context.Context, sessionID string) error {
	session := s.Session(sessionID)

	session.Lock()
	session.Activities = nil
	session.Content = make(map[string]tracker.ContentEntry)
	session.ChatHistory = nil
	session.Unlock()

	// Delete failures are logged only; the in-memory state is already
	// clean.
	if err := s.store.Clear(sessionID); err != nil {
		s.logger.Warn("Tracker", "Failed to clear persistence mirrors", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	// Uploaded documents belong to the session too. Chunks first, they
	// reference the documents.
	if err := s.chunkRepo.DeleteBySession(ctx, sessionID); err != nil {
		s.logger.Warn("Tracker", "Failed to delete session chunks", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	if err := s.documentRepo.DeleteBySession(ctx, sessionID); err != nil {
		s.logger.Warn("Tracker", "Failed to delete session documents", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	if s.natsPub != nil {
		evt := events.NewBaseEvent(events.SessionCleared, map[string]interface{}{"session_id": sessionID})
		if err := s.natsPub.Publish(ctx, evt); err != nil {
			s.logger.Warn("Tracker", "Failed to publish clear event", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}

// APIKey resolves a credential with session overrides taking precedence
// over the configured fallback.
func (s *trackerService) APIKey(sessionID, name, fallback string) string {
	session := s.Session(sessionID)

	session.Lock()
	defer session.Unlock()

	if key := session.APIKeys[name]; key != "" {
		return key
	}
	return fallback
}
