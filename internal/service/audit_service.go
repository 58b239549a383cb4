package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-service/internal/events"
)

// AuditService writes the audit trail for security-relevant events. Sinks
// run through the dispatcher so publishers never block or fail on them.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes the audit sinks to every tracked event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventEmployeeLoggedIn,
		events.EventEmployeeLoggedOut,
		events.EventLoginFailed,
		events.EventPasswordReset,
		events.EventEmployeeDisabled,
		events.EventDepartmentReassigned,
	} {
		a.dispatcher.Subscribe(eventType, a.record)
	}
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.Int64("subject_id", event.SubjectID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
	return nil
}
