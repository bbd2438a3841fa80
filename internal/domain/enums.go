package domain

// Relationship is a precedence-diagramming link type between two activities.
type Relationship string

const (
	RelFinishToStart  Relationship = "FS"
	RelStartToStart   Relationship = "SS"
	RelFinishToFinish Relationship = "FF"
	RelStartToFinish  Relationship = "SF"
)

// ValidRelationships is the canonical set of accepted relationship strings.
var ValidRelationships = map[string]bool{
	"FS": true, "SS": true, "FF": true, "SF": true,
}

type ActivityStatus string

const (
	ActivityNotStarted ActivityStatus = "not_started"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityStuck      ActivityStatus = "stuck"
	ActivityDone       ActivityStatus = "done"
	ActivityOnHold     ActivityStatus = "on_hold"
	ActivitySkipped    ActivityStatus = "skipped"
)

// ValidActivityStatuses is the canonical set of accepted status strings.
var ValidActivityStatuses = map[string]bool{
	"not_started": true, "in_progress": true, "stuck": true,
	"done": true, "on_hold": true, "skipped": true,
}

type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobOnHold   JobStatus = "on_hold"
	JobComplete JobStatus = "complete"
)

// AuditEventType identifies the kind of change recorded in the audit log.
type AuditEventType string

const (
	EventActivitiesInstantiated AuditEventType = "activities_instantiated"
	EventScheduleRecalculated   AuditEventType = "schedule_recalculated"
	EventActivityUpdated        AuditEventType = "activity_updated"
	EventStatusChanged          AuditEventType = "status_changed"
)
