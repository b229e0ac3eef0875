package db

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// ticket_rows holds tickets with every lookup already resolved to its display
// name; ticket_photos holds the typed photo attachments.
var migrations = []*gormigrate.Migration{
	{
		ID: "20250101_create_ticket_rows",
		Migrate: func(tx *gorm.DB) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS ticket_rows (
					id BIGSERIAL PRIMARY KEY,
					company_id TEXT NOT NULL,
					ticket_number TEXT NOT NULL,
					ticket_date DATE NOT NULL,
					created_at TIMESTAMP NOT NULL,
					job_name TEXT NOT NULL DEFAULT '',
					direction TEXT NOT NULL CHECK (direction IN ('Import', 'Export')),
					destination_origin TEXT NOT NULL DEFAULT '',
					hauling_company TEXT NOT NULL DEFAULT '',
					material TEXT NOT NULL DEFAULT '',
					truck_number TEXT NOT NULL DEFAULT '',
					truck_type TEXT NOT NULL DEFAULT '',
					driver_name TEXT NOT NULL DEFAULT '',
					signed_by TEXT NOT NULL DEFAULT '',
					hauler_ticket_number TEXT NOT NULL DEFAULT 'N/A',
					UNIQUE (company_id, ticket_number)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_ticket_rows_company_date ON ticket_rows (company_id, ticket_date)`,
			)
		},
		Rollback: func(tx *gorm.DB) error {
			return execAll(tx, `DROP TABLE IF EXISTS ticket_rows`)
		},
	},
	{
		ID: "20250101_create_ticket_photos",
		Migrate: func(tx *gorm.DB) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS ticket_photos (
					id BIGSERIAL PRIMARY KEY,
					ticket_id BIGINT NOT NULL REFERENCES ticket_rows (id) ON DELETE CASCADE,
					photo_type TEXT NOT NULL CHECK (photo_type IN ('Ticket', 'Truck', 'Truck2', 'Asbestos', 'Scrap')),
					url TEXT NOT NULL,
					file_name TEXT
				)`,
				`CREATE INDEX IF NOT EXISTS idx_ticket_photos_ticket ON ticket_photos (ticket_id)`,
			)
		},
		Rollback: func(tx *gorm.DB) error {
			return execAll(tx, `DROP TABLE IF EXISTS ticket_photos`)
		},
	},
}

func runMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations)
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func execAll(tx *gorm.DB, statements ...string) error {
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
