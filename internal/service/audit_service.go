package service

import (
	"context"

	"policy-compass-be/internal/pkg/logger"
	"policy-compass-be/pkg/events"
	pktNats "policy-compass-be/pkg/nats"
)

// IAuditService consumes the NATS event stream and writes an append-only
// audit trail to the isolated feed log. Other consumers (analytics,
// alerting) can attach their own durables to the same stream.
type IAuditService interface {
	Start()
}

type auditService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewAuditService(subscriber *pktNats.Subscriber, auditLogger logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		logger:     auditLogger,
	}
}

func (s *auditService) Start() {
	err := s.subscriber.Subscribe("events.>", "activity-audit", func(_ context.Context, event events.Event) error {
		s.logger.Info("Audit", event.EventType(), event.Payload())
		return nil
	})
	if err != nil {
		s.logger.Error("Audit", "Failed to subscribe to event stream", map[string]interface{}{"error": err.Error()})
	}
}
