package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/whittech/estimator/internal/domain"
)

// SQLiteCatalogRepo implements CatalogRepo over the materials_catalog table.
type SQLiteCatalogRepo struct {
	db *sql.DB
}

func NewSQLiteCatalogRepo(db *sql.DB) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: db}
}

const catalogColumns = `id, category, item_name, description, unit, material_cost,
	typical_labor_hours, manufacturer, part_number, date_added, last_updated`

func (r *SQLiteCatalogRepo) Add(ctx context.Context, m *domain.MaterialCatalogEntry) error {
	if m.ItemName == "" {
		return fmt.Errorf("material item name is required")
	}
	now := nowUTC()
	res, err := r.db.ExecContext(ctx, `INSERT INTO materials_catalog
		(category, item_name, description, unit, material_cost, typical_labor_hours,
		 manufacturer, part_number, date_added, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Category, m.ItemName, m.Description, domain.CoalesceStr(m.Unit, domain.FallbackUnit),
		m.MaterialCost, m.TypicalLaborHours, m.Manufacturer, m.PartNumber, now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting material: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading material id: %w", err)
	}
	m.ID = id
	return nil
}

func (r *SQLiteCatalogRepo) List(ctx context.Context, category string) ([]*domain.MaterialCatalogEntry, error) {
	var rows *sql.Rows
	var err error
	if category != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+catalogColumns+` FROM materials_catalog WHERE category = ? ORDER BY item_name`,
			category)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+catalogColumns+` FROM materials_catalog ORDER BY category, item_name`)
	}
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	defer rows.Close()
	return collectMaterials(rows)
}

func (r *SQLiteCatalogRepo) Search(ctx context.Context, query string) ([]*domain.MaterialCatalogEntry, error) {
	like := "%" + query + "%"
	prefix := query + "%"
	rows, err := r.db.QueryContext(ctx, `SELECT `+catalogColumns+` FROM materials_catalog
		WHERE item_name LIKE ? OR description LIKE ? OR category LIKE ?
		ORDER BY CASE WHEN item_name LIKE ? THEN 0 ELSE 1 END, item_name
		LIMIT 20`,
		like, like, like, prefix)
	if err != nil {
		return nil, fmt.Errorf("searching materials: %w", err)
	}
	defer rows.Close()
	return collectMaterials(rows)
}

func collectMaterials(rows *sql.Rows) ([]*domain.MaterialCatalogEntry, error) {
	var out []*domain.MaterialCatalogEntry
	for rows.Next() {
		var m domain.MaterialCatalogEntry
		var added, updated string
		if err := rows.Scan(
			&m.ID, &m.Category, &m.ItemName, &m.Description, &m.Unit, &m.MaterialCost,
			&m.TypicalLaborHours, &m.Manufacturer, &m.PartNumber, &added, &updated,
		); err != nil {
			return nil, fmt.Errorf("scanning material: %w", err)
		}
		m.DateAdded = parseTime(added)
		m.LastUpdated = parseTime(updated)
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating materials: %w", err)
	}
	return out, nil
}
