package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE additions tolerate re-runs via the duplicate-column check.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                    INTEGER PRIMARY KEY AUTOINCREMENT,
		project_number        TEXT UNIQUE,
		name                  TEXT NOT NULL,
		client_name           TEXT NOT NULL DEFAULT '',
		client_company        TEXT NOT NULL DEFAULT '',
		client_email          TEXT NOT NULL DEFAULT '',
		client_phone          TEXT NOT NULL DEFAULT '',
		client_address        TEXT NOT NULL DEFAULT '',
		description           TEXT NOT NULL DEFAULT '',
		status                TEXT NOT NULL DEFAULT 'draft',
		notes                 TEXT NOT NULL DEFAULT '',
		material_tax_rate_pct REAL NOT NULL DEFAULT 0,
		contingency_pct       REAL NOT NULL DEFAULT 0,
		total_amount          REAL NOT NULL DEFAULT 0,
		date_created          TEXT NOT NULL,
		date_modified         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS line_items (
		id                      INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id              INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		sort_order              INTEGER NOT NULL DEFAULT 0,
		category                TEXT NOT NULL DEFAULT '',
		description             TEXT NOT NULL,
		quantity                REAL NOT NULL DEFAULT 1,
		unit                    TEXT NOT NULL DEFAULT 'EA',
		material_cost           REAL NOT NULL DEFAULT 0,
		material_markup_percent REAL NOT NULL DEFAULT 0,
		labor_hours             REAL NOT NULL DEFAULT 0,
		labor_rate              REAL NOT NULL DEFAULT 75,
		labor_markup_percent    REAL NOT NULL DEFAULT 0,
		overhead_percent        REAL NOT NULL DEFAULT 10,
		profit_percent          REAL NOT NULL DEFAULT 10,
		spec_url                TEXT NOT NULL DEFAULT '',
		notes                   TEXT NOT NULL DEFAULT '',
		created_at              TEXT NOT NULL,
		updated_at              TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_line_items_project ON line_items(project_id)`,

	`CREATE TABLE IF NOT EXISTS materials_catalog (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		category            TEXT NOT NULL DEFAULT '',
		item_name           TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		unit                TEXT NOT NULL DEFAULT 'EA',
		material_cost       REAL NOT NULL DEFAULT 0,
		typical_labor_hours REAL NOT NULL DEFAULT 0,
		manufacturer        TEXT NOT NULL DEFAULT '',
		part_number         TEXT NOT NULL DEFAULT '',
		date_added          TEXT NOT NULL,
		last_updated        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT UNIQUE NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS company_settings (
		id                          INTEGER PRIMARY KEY CHECK (id = 1),
		company_name                TEXT NOT NULL DEFAULT '',
		address                     TEXT NOT NULL DEFAULT '',
		phone                       TEXT NOT NULL DEFAULT '',
		email                       TEXT NOT NULL DEFAULT '',
		website                     TEXT NOT NULL DEFAULT '',
		logo_path                   TEXT NOT NULL DEFAULT '',
		default_labor_rate          REAL NOT NULL DEFAULT 75,
		default_material_markup_pct REAL NOT NULL DEFAULT 0,
		default_labor_markup_pct    REAL NOT NULL DEFAULT 0,
		default_overhead_pct        REAL NOT NULL DEFAULT 10,
		default_profit_pct          REAL NOT NULL DEFAULT 10,
		material_tax_rate_pct       REAL NOT NULL DEFAULT 0,
		contingency_pct             REAL NOT NULL DEFAULT 0,
		proposal_terms              TEXT NOT NULL DEFAULT 'Payment due within 30 days. 50% deposit required to commence work.'
	)`,
}
