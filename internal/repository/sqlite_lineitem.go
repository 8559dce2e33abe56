package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/whittech/estimator/internal/domain"
)

// SQLiteLineItemRepo implements LineItemRepo using a SQLite database.
type SQLiteLineItemRepo struct {
	db *sql.DB
}

func NewSQLiteLineItemRepo(db *sql.DB) *SQLiteLineItemRepo {
	return &SQLiteLineItemRepo{db: db}
}

const lineItemColumns = `id, project_id, sort_order, category, description, quantity, unit,
	material_cost, material_markup_percent, labor_hours, labor_rate, labor_markup_percent,
	overhead_percent, profit_percent, spec_url, notes, created_at, updated_at`

func (r *SQLiteLineItemRepo) Create(ctx context.Context, li *domain.LineItem) error {
	if !li.HasDescription() {
		return ErrBlankDescription
	}
	if li.ProjectID == 0 {
		return fmt.Errorf("line item requires a project reference")
	}
	now := nowUTC()
	res, err := r.db.ExecContext(ctx, `INSERT INTO line_items
		(project_id, sort_order, category, description, quantity, unit,
		 material_cost, material_markup_percent, labor_hours, labor_rate, labor_markup_percent,
		 overhead_percent, profit_percent, spec_url, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		li.ProjectID, li.SortOrder, li.Category, li.Description, li.Quantity, li.Unit,
		li.MaterialCost, li.MaterialMarkupPct, li.LaborHours, li.LaborRate, li.LaborMarkupPct,
		li.OverheadPct, li.ProfitPct, li.SpecURL, li.Notes, now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting line item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading line item id: %w", err)
	}
	li.ID = id
	li.CreatedAt = parseTime(now)
	li.UpdatedAt = parseTime(now)
	return nil
}

func (r *SQLiteLineItemRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.LineItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+lineItemColumns+` FROM line_items WHERE project_id = ? ORDER BY sort_order, id`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	var items []*domain.LineItem
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line items: %w", err)
	}
	return items, nil
}

// Update writes the row's full current field set, not a diff.
func (r *SQLiteLineItemRepo) Update(ctx context.Context, li *domain.LineItem) error {
	res, err := r.db.ExecContext(ctx, `UPDATE line_items SET
		sort_order = ?, category = ?, description = ?, quantity = ?, unit = ?,
		material_cost = ?, material_markup_percent = ?, labor_hours = ?, labor_rate = ?,
		labor_markup_percent = ?, overhead_percent = ?, profit_percent = ?,
		spec_url = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		li.SortOrder, li.Category, li.Description, li.Quantity, li.Unit,
		li.MaterialCost, li.MaterialMarkupPct, li.LaborHours, li.LaborRate,
		li.LaborMarkupPct, li.OverheadPct, li.ProfitPct,
		li.SpecURL, li.Notes, nowUTC(), li.ID,
	)
	if err != nil {
		return fmt.Errorf("updating line item: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("line item %d: %w", li.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteLineItemRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM line_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting line item: %w", err)
	}
	return nil
}

func (r *SQLiteLineItemRepo) DeleteByProject(ctx context.Context, projectID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM line_items WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("deleting project line items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted line items: %w", err)
	}
	return n, nil
}

func scanLineItem(row rowScanner) (*domain.LineItem, error) {
	var li domain.LineItem
	var created, updated string

	err := row.Scan(
		&li.ID, &li.ProjectID, &li.SortOrder, &li.Category, &li.Description, &li.Quantity, &li.Unit,
		&li.MaterialCost, &li.MaterialMarkupPct, &li.LaborHours, &li.LaborRate, &li.LaborMarkupPct,
		&li.OverheadPct, &li.ProfitPct, &li.SpecURL, &li.Notes, &created, &updated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("line item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning line item: %w", err)
	}
	li.CreatedAt = parseTime(created)
	li.UpdatedAt = parseTime(updated)
	return &li, nil
}
