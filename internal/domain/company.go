package domain

import "time"

// Company is the tenant boundary: every job type and job belongs to one
// company, and every read and write is scoped by it.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Actor identifies who performed an operation, for the audit trail.
type Actor struct {
	ID   string
	Name string
}
