package domain

import (
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID            int64
	ProjectNumber string
	Name          string

	ClientName    string
	ClientCompany string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string

	Description string
	Status      ProjectStatus
	Notes       string

	// Pricing terms applied across the whole estimate.
	MaterialTaxRatePct float64
	ContingencyPct     float64

	// TotalAmount is the cached grand total, recomputed after every
	// line-item mutation. Listing views read it without loading rows.
	TotalAmount float64

	DateCreated  time.Time
	DateModified time.Time
}

// Validate checks the fields required before a project can be created.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if p.Status != "" && !ValidProjectStatuses[string(p.Status)] {
		return fmt.Errorf("invalid project status %q", p.Status)
	}
	return nil
}

// DisplayID returns the best short identifier for listings: the project
// number when present, otherwise the numeric id.
func (p *Project) DisplayID() string {
	if p.ProjectNumber != "" {
		return p.ProjectNumber
	}
	return fmt.Sprintf("#%d", p.ID)
}
