package service

import (
	"context"
	"fmt"

	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/logger"
	"policy-compass-be/internal/pkg/mailer"
	"policy-compass-be/pkg/events"
	pktNats "policy-compass-be/pkg/nats"
	"policy-compass-be/pkg/report"
)

type IExportService interface {
	Export(ctx context.Context, sessionID string, req *dto.ExportRequest) (*dto.ExportResponse, error)
}

type exportService struct {
	generator      *report.Generator
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	trackerService ITrackerService
	logger         logger.ILogger
}

func NewExportService(
	generator *report.Generator,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	trackerService ITrackerService,
	sysLogger logger.ILogger,
) IExportService {
	return &exportService{
		generator:      generator,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		trackerService: trackerService,
		logger:         sysLogger,
	}
}

func (s *exportService) Export(ctx context.Context, sessionID string, req *dto.ExportRequest) (*dto.ExportResponse, error) {
	var path string
	var err error

	if len(req.Sections) > 0 {
		sections := make([]report.Section, len(req.Sections))
		for i, sec := range req.Sections {
			sections[i] = report.Section{Title: sec.Title, Body: sec.Body}
		}
		path, err = s.generator.GenerateSections(req.Title, sections, req.Metadata)
	} else {
		if req.Body == "" {
			return nil, fmt.Errorf("report needs a body or sections")
		}
		path, err = s.generator.Generate(req.Title, req.Body)
	}
	if err != nil {
		return nil, err
	}

	emailed := false
	if req.Email != "" && s.emailService != nil {
		if mailErr := s.emailService.SendReport(req.Email, req.Title, path); mailErr != nil {
			s.logger.Warn("Export", "Failed to email report", map[string]interface{}{
				"email": req.Email,
				"error": mailErr.Error(),
			})
		} else {
			emailed = true
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewBaseEvent(events.ReportExported, map[string]interface{}{
			"session_id":   sessionID,
			"report_title": req.Title,
			"path":         path,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Export", "Failed to publish export event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.trackerService.Track(ctx, sessionID, "exported", "Export Report", map[string]interface{}{
		"report_title": req.Title,
	})

	return &dto.ExportResponse{Path: path, Emailed: emailed}, nil
}
