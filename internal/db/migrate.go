package db

import (
	"database/sql"
	"fmt"
)

// Migrate bootstraps the schema. Every statement is idempotent and runs on
// each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS assets (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		code       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		location   TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS technicians (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL DEFAULT 'technician'
		           CHECK(role IN ('technician','supervisor','administrator','viewer')),
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS maintenance_plans (
		id                     INTEGER PRIMARY KEY AUTOINCREMENT,
		code                   TEXT NOT NULL UNIQUE,
		name                   TEXT NOT NULL,
		status                 TEXT NOT NULL DEFAULT 'active'
		                       CHECK(status IN ('active','inactive','paused')),
		automatic_generation   INTEGER NOT NULL DEFAULT 0,
		asset_id               INTEGER REFERENCES assets(id) ON DELETE SET NULL,
		recurrence_kind        TEXT NOT NULL DEFAULT '',
		day_of_month           INTEGER,
		week_of_month          INTEGER,
		weekdays               TEXT NOT NULL DEFAULT '',
		weekday                TEXT NOT NULL DEFAULT '',
		interval_weeks         INTEGER,
		interval_months        INTEGER,
		frequency              TEXT NOT NULL DEFAULT '',
		frequency_days         INTEGER,
		last_occurrence        TEXT,
		next_occurrence        TEXT,
		estimated_duration_min INTEGER NOT NULL DEFAULT 0,
		instructions           TEXT NOT NULL DEFAULT '',
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_due ON maintenance_plans(status, next_occurrence)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_asset ON maintenance_plans(asset_id)`,

	`CREATE TABLE IF NOT EXISTS work_orders (
		id                     INTEGER PRIMARY KEY AUTOINCREMENT,
		number                 TEXT NOT NULL UNIQUE,
		type                   TEXT NOT NULL,
		priority               TEXT NOT NULL DEFAULT 'Medium',
		status                 TEXT NOT NULL DEFAULT 'Pending'
		                       CHECK(status IN ('Pending','In Progress','Completed','Cancelled')),
		description            TEXT NOT NULL DEFAULT '',
		observations           TEXT NOT NULL DEFAULT '',
		plan_id                INTEGER REFERENCES maintenance_plans(id) ON DELETE SET NULL,
		asset_id               INTEGER REFERENCES assets(id) ON DELETE SET NULL,
		technician_id          INTEGER REFERENCES technicians(id) ON DELETE SET NULL,
		estimated_duration_min INTEGER NOT NULL DEFAULT 0,
		scheduled_date         TEXT,
		completed_at           TEXT,
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_orders_asset_status ON work_orders(asset_id, type, status)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_technician_status ON work_orders(technician_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_plan ON work_orders(plan_id)`,
}
