package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/pkg/ai/router"
	"ai-assistant-be/pkg/events"
	"ai-assistant-be/pkg/llm"
	pktNats "ai-assistant-be/pkg/nats"
)

type IAssistantService interface {
	Chat(ctx context.Context, message string, history []llm.Message) *router.CommandResult
}

// assistantService fronts the dispatch core and records an audit trail of
// every handled message.
type assistantService struct {
	router           *router.Router
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	sysLogger        logger.ILogger
}

func NewAssistantService(
	cmdRouter *router.Router,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IAssistantService {
	return &assistantService{
		router:           cmdRouter,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		sysLogger:        sysLogger,
	}
}

func (s *assistantService) Chat(ctx context.Context, message string, history []llm.Message) *router.CommandResult {
	result := s.router.HandleMessage(ctx, message, history)

	data := map[string]interface{}{
		"success": result.Success,
	}
	if !result.Success {
		data["reason"] = result.Message
	}

	evt := dto.AuditEventMessage{
		Type:       events.TypeActionExecuted,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if payload, err := json.Marshal(evt); err == nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.sysLogger.Warn("assistant-service", "failed to publish audit event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		busEvent := events.BaseEvent{
			Type:       events.TypeActionExecuted,
			Data:       data,
			OccurredAt: evt.OccurredAt,
		}
		if err := s.eventPublisher.Publish(ctx, busEvent); err != nil {
			s.sysLogger.Warn("assistant-service", "failed to publish event to NATS", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return result
}
