package repository

import "github.com/mfletch/jobsite/internal/db"

// Repos bundles one repository per aggregate, all bound to the same DBTX.
// Services hold a Repos over the base *sql.DB for reads and construct a
// fresh tx-scoped Repos inside each unit of work for writes.
type Repos struct {
	Companies  CompanyRepo
	JobTypes   JobTypeRepo
	Templates  TemplateRepo
	Jobs       JobRepo
	Activities ActivityRepo
	Checklists ChecklistRepo
	Audit      AuditRepo
}

// NewRepos creates the full repository set over conn.
func NewRepos(conn db.DBTX) *Repos {
	return &Repos{
		Companies:  NewSQLiteCompanyRepo(conn),
		JobTypes:   NewSQLiteJobTypeRepo(conn),
		Templates:  NewSQLiteTemplateRepo(conn),
		Jobs:       NewSQLiteJobRepo(conn),
		Activities: NewSQLiteActivityRepo(conn),
		Checklists: NewSQLiteChecklistRepo(conn),
		Audit:      NewSQLiteAuditRepo(conn),
	}
}
