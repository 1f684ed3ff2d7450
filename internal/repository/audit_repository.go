package repository

import (
	"context"
	"time"
)

// AuditEntry is one appended audit-log row derived from a domain event.
type AuditEntry struct {
	EventID      string
	EventType    string
	EmployeeCode string
	ActorID      int64
	ActorRole    string
	Payload      []byte
	OccurredAt   time.Time
}

// AuditRepository appends to the audit log. Append-only: no update or delete.
type AuditRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error
}

type auditRepository struct {
	db DB
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(db DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, entry *AuditEntry) error {
	const query = `
        INSERT INTO audit_log (event_id, event_type, employee_id, actor_id, actor_role, payload, occurred_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.db.Exec(ctx, query,
		entry.EventID,
		entry.EventType,
		entry.EmployeeCode,
		entry.ActorID,
		entry.ActorRole,
		entry.Payload,
		entry.OccurredAt,
	)
	return err
}
