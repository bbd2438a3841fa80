package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is IF NOT EXISTS, so the
// full list re-runs safely on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS job_types (
		id         TEXT PRIMARY KEY,
		company_id TEXT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_job_types_company ON job_types(company_id)`,

	`CREATE TABLE IF NOT EXISTS activity_templates (
		id                     TEXT PRIMARY KEY,
		job_type_id            TEXT NOT NULL REFERENCES job_types(id) ON DELETE CASCADE,
		sort_order             INTEGER NOT NULL,
		name                   TEXT NOT NULL,
		stage                  TEXT NOT NULL DEFAULT '',
		category               TEXT NOT NULL DEFAULT '',
		consultant             TEXT NOT NULL DEFAULT '',
		deliverable            TEXT NOT NULL DEFAULT '',
		phase                  TEXT NOT NULL DEFAULT '',
		estimated_days         INTEGER NOT NULL CHECK(estimated_days > 0),
		predecessor_sort_order INTEGER,
		relationship           TEXT CHECK(relationship IN ('FS','SS','FF','SF')),
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activity_templates_job_type
		ON activity_templates(job_type_id, sort_order)`,

	`CREATE TABLE IF NOT EXISTS template_subtasks (
		id             TEXT PRIMARY KEY,
		template_id    TEXT NOT NULL REFERENCES activity_templates(id) ON DELETE CASCADE,
		sort_order     INTEGER NOT NULL,
		name           TEXT NOT NULL,
		estimated_days INTEGER NOT NULL CHECK(estimated_days > 0)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_template_subtasks_template
		ON template_subtasks(template_id, sort_order)`,

	`CREATE TABLE IF NOT EXISTS template_checklist_items (
		id          TEXT PRIMARY KEY,
		template_id TEXT NOT NULL REFERENCES activity_templates(id) ON DELETE CASCADE,
		sort_order  INTEGER NOT NULL,
		label       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_template_checklist_items_template
		ON template_checklist_items(template_id, sort_order)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id          TEXT PRIMARY KEY,
		company_id  TEXT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		job_type_id TEXT REFERENCES job_types(id) ON DELETE SET NULL,
		start_date  TEXT,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','on_hold','complete')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company_id)`,

	`CREATE TABLE IF NOT EXISTS job_activities (
		id                     TEXT PRIMARY KEY,
		job_id                 TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		template_id            TEXT REFERENCES activity_templates(id) ON DELETE SET NULL,
		parent_id              TEXT REFERENCES job_activities(id) ON DELETE CASCADE,
		sort_order             INTEGER NOT NULL,
		name                   TEXT NOT NULL,
		stage                  TEXT NOT NULL DEFAULT '',
		category               TEXT NOT NULL DEFAULT '',
		consultant             TEXT NOT NULL DEFAULT '',
		deliverable            TEXT NOT NULL DEFAULT '',
		phase                  TEXT NOT NULL DEFAULT '',
		estimated_days         INTEGER NOT NULL CHECK(estimated_days > 0),
		predecessor_sort_order INTEGER,
		relationship           TEXT CHECK(relationship IN ('FS','SS','FF','SF')),
		start_date             TEXT,
		end_date               TEXT,
		status                 TEXT NOT NULL DEFAULT 'not_started'
		                       CHECK(status IN ('not_started','in_progress','stuck','done','on_hold','skipped')),
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_job_activities_job ON job_activities(job_id, sort_order)`,
	`CREATE INDEX IF NOT EXISTS idx_job_activities_parent ON job_activities(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_job_activities_status ON job_activities(status)`,

	`CREATE TABLE IF NOT EXISTS job_activity_checklists (
		id           TEXT PRIMARY KEY,
		activity_id  TEXT NOT NULL REFERENCES job_activities(id) ON DELETE CASCADE,
		sort_order   INTEGER NOT NULL,
		label        TEXT NOT NULL,
		completed    INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_job_activity_checklists_activity
		ON job_activity_checklists(activity_id, sort_order)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id         TEXT PRIMARY KEY,
		job_id     TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		event_type TEXT NOT NULL,
		actor_id   TEXT NOT NULL DEFAULT '',
		actor_name TEXT NOT NULL DEFAULT '',
		detail     TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_logs_job ON audit_logs(job_id, created_at)`,
}
