// Package contract holds the request/response types of the scheduling
// service surface. The HTTP or CLI layer maps onto these; the services
// never see transport details.
package contract

import (
	"time"

	"github.com/mfletch/jobsite/internal/domain"
)

// InstantiateRequest applies a job type's workflow to a job, anchored at
// StartDate (clamped onto a working day before scheduling).
type InstantiateRequest struct {
	CompanyID string
	JobID     string
	JobTypeID string
	StartDate time.Time
	Actor     domain.Actor
}

// InstantiateResponse reports how many activity rows were created,
// parents and subtask children combined.
type InstantiateResponse struct {
	Created int
}

// RecalculateRequest re-derives start/end dates for a job's live activities.
type RecalculateRequest struct {
	CompanyID string
	JobID     string
	Actor     domain.Actor
}

// RecalculateResponse lists the activities whose dates changed. Changed is
// zero when the schedule was already consistent.
type RecalculateResponse struct {
	Changed     int
	ActivityIDs []string
}

// SyncRequest reconciles a job's activity predecessor links back to the
// current state of their source templates.
type SyncRequest struct {
	CompanyID string
	JobID     string
	Actor     domain.Actor
}

// SyncResponse reports how many activities were repaired out of those
// still linked to a template.
type SyncResponse struct {
	Synced int
	Total  int
}
