package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS scan_events (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		scanned_at TIMESTAMPTZ,
		status VARCHAR(8) NOT NULL,
		pallet_id VARCHAR(64) NOT NULL DEFAULT '',
		box_id VARCHAR(64) NOT NULL DEFAULT '',
		model VARCHAR(128)
	);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns
			WHERE table_name = 'scan_events' AND column_name = 'model') THEN
			ALTER TABLE scan_events ADD COLUMN model VARCHAR(128);
		END IF;
	END
	$$;`,
	`CREATE INDEX IF NOT EXISTS idx_scan_events_scanned_at ON scan_events (scanned_at);`,
	`CREATE INDEX IF NOT EXISTS idx_scan_events_status ON scan_events (status);`,
	`CREATE INDEX IF NOT EXISTS idx_scan_events_box_id ON scan_events (box_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
