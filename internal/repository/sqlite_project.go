package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/whittech/estimator/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db *sql.DB
}

func NewSQLiteProjectRepo(db *sql.DB) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

const projectColumns = `id, project_number, name, client_name, client_company, client_email,
	client_phone, client_address, description, status, notes,
	material_tax_rate_pct, contingency_pct, total_amount, date_created, date_modified`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = domain.ProjectDraft
	}
	now := nowUTC()
	res, err := r.db.ExecContext(ctx, `INSERT INTO projects
		(project_number, name, client_name, client_company, client_email, client_phone,
		 client_address, description, status, notes, material_tax_rate_pct, contingency_pct,
		 total_amount, date_created, date_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullIfEmpty(p.ProjectNumber), p.Name, p.ClientName, p.ClientCompany, p.ClientEmail,
		p.ClientPhone, p.ClientAddress, p.Description, string(p.Status), p.Notes,
		p.MaterialTaxRatePct, p.ContingencyPct, p.TotalAmount, now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading project id: %w", err)
	}
	p.ID = id
	p.DateCreated = parseTime(now)
	p.DateModified = parseTime(now)
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY date_created DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE projects SET
		project_number = ?, name = ?, client_name = ?, client_company = ?, client_email = ?,
		client_phone = ?, client_address = ?, description = ?, status = ?, notes = ?,
		material_tax_rate_pct = ?, contingency_pct = ?, date_modified = ?
		WHERE id = ?`,
		nullIfEmpty(p.ProjectNumber), p.Name, p.ClientName, p.ClientCompany, p.ClientEmail,
		p.ClientPhone, p.ClientAddress, p.Description, string(p.Status), p.Notes,
		p.MaterialTaxRatePct, p.ContingencyPct, nowUTC(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) UpdateTotal(ctx context.Context, id int64, amount float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE projects SET total_amount = ? WHERE id = ?`, amount, id)
	if err != nil {
		return fmt.Errorf("updating project total: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var projectNumber sql.NullString
	var status, created, modified string

	err := row.Scan(
		&p.ID, &projectNumber, &p.Name, &p.ClientName, &p.ClientCompany, &p.ClientEmail,
		&p.ClientPhone, &p.ClientAddress, &p.Description, &status, &p.Notes,
		&p.MaterialTaxRatePct, &p.ContingencyPct, &p.TotalAmount, &created, &modified,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.ProjectNumber = projectNumber.String
	p.Status = domain.ProjectStatus(status)
	p.DateCreated = parseTime(created)
	p.DateModified = parseTime(modified)
	return &p, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
