package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
)

// AuditRecorder persists every published domain event to the audit log.
type AuditRecorder struct {
	audit  repository.AuditRepository
	logger *zap.Logger
}

// NewAuditRecorder builds the recorder.
func NewAuditRecorder(audit repository.AuditRepository, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{audit: audit, logger: logger}
}

// RegisterHandlers subscribes the recorder to all event types.
func (r *AuditRecorder) RegisterHandlers(dispatcher events.Dispatcher) {
	for _, eventType := range []events.EventType{
		events.EventLeaveApplied,
		events.EventLeaveStatusChanged,
		events.EventAttendanceMarked,
		events.EventPayrollAdded,
	} {
		dispatcher.Subscribe(eventType, r.record)
	}
}

func (r *AuditRecorder) record(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		r.logger.Error("audit payload marshal failed",
			zap.String("event_id", event.ID),
			zap.Error(err))
		return err
	}

	entry := &repository.AuditEntry{
		EventID:      event.ID,
		EventType:    string(event.Type),
		EmployeeCode: event.EmployeeCode,
		ActorID:      event.Actor.ID,
		ActorRole:    string(event.Actor.Role),
		Payload:      payload,
		OccurredAt:   event.Timestamp,
	}
	if err := r.audit.Append(ctx, entry); err != nil {
		r.logger.Error("audit append failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}

	r.logger.Debug("audit event recorded",
		zap.String("event_type", string(event.Type)),
		zap.String("employee_id", event.EmployeeCode))
	return nil
}
