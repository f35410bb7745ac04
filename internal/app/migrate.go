package app

import (
	"database/sql"

	"worklane/internal/invoice"
	"worklane/internal/leave"
	"worklane/internal/project"
	"worklane/internal/reimbursement"
	"worklane/internal/timesheet"
	"worklane/internal/user"

	"gorm.io/gorm"
)

const outboxSchema = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	aggregate_type VARCHAR(50) NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type VARCHAR(100) NOT NULL,
	topic VARCHAR(255) NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// migrate provisions the GORM-managed tables plus the raw-SQL outbox
// table the producer worker polls.
func migrate(gormDB *gorm.DB, sqlDB *sql.DB) error {
	if err := gormDB.AutoMigrate(
		&user.User{},
		&project.Project{},
		&timesheet.Timesheet{},
		&leave.Leave{},
		&invoice.Invoice{},
		&reimbursement.Reimbursement{},
	); err != nil {
		return err
	}
	_, err := sqlDB.Exec(outboxSchema)
	return err
}
