package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/whittech/estimator/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo over the singleton
// company_settings row.
type SQLiteSettingsRepo struct {
	db *sql.DB
}

func NewSQLiteSettingsRepo(db *sql.DB) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: db}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.CompanySettings, error) {
	var s domain.CompanySettings
	err := r.db.QueryRowContext(ctx, `SELECT company_name, address, phone, email, website, logo_path,
		default_labor_rate, default_material_markup_pct, default_labor_markup_pct,
		default_overhead_pct, default_profit_pct, material_tax_rate_pct, contingency_pct,
		proposal_terms
		FROM company_settings WHERE id = 1`).Scan(
		&s.CompanyName, &s.Address, &s.Phone, &s.Email, &s.Website, &s.LogoPath,
		&s.DefaultLaborRate, &s.DefaultMaterialMarkupPct, &s.DefaultLaborMarkupPct,
		&s.DefaultOverheadPct, &s.DefaultProfitPct, &s.MaterialTaxRatePct, &s.ContingencyPct,
		&s.ProposalTerms,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("loading company settings: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSettingsRepo) Update(ctx context.Context, s *domain.CompanySettings) error {
	_, err := r.db.ExecContext(ctx, `UPDATE company_settings SET
		company_name = ?, address = ?, phone = ?, email = ?, website = ?, logo_path = ?,
		default_labor_rate = ?, default_material_markup_pct = ?, default_labor_markup_pct = ?,
		default_overhead_pct = ?, default_profit_pct = ?, material_tax_rate_pct = ?,
		contingency_pct = ?, proposal_terms = ?
		WHERE id = 1`,
		s.CompanyName, s.Address, s.Phone, s.Email, s.Website, s.LogoPath,
		s.DefaultLaborRate, s.DefaultMaterialMarkupPct, s.DefaultLaborMarkupPct,
		s.DefaultOverheadPct, s.DefaultProfitPct, s.MaterialTaxRatePct,
		s.ContingencyPct, s.ProposalTerms,
	)
	if err != nil {
		return fmt.Errorf("updating company settings: %w", err)
	}
	return nil
}
