package domain

import "time"

// AuditEvent is one entry in a job's audit trail. Detail carries a JSON
// payload describing the change (counts, affected IDs, field diffs).
type AuditEvent struct {
	ID        string
	JobID     string
	EventType AuditEventType
	ActorID   string
	ActorName string
	Detail    string
	CreatedAt time.Time
}
