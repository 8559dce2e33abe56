package domain

type ProjectStatus string

const (
	ProjectDraft    ProjectStatus = "draft"
	ProjectSent     ProjectStatus = "sent"
	ProjectAccepted ProjectStatus = "accepted"
	ProjectDeclined ProjectStatus = "declined"
	ProjectArchived ProjectStatus = "archived"
)

// ValidProjectStatuses is the canonical set of accepted status strings.
var ValidProjectStatuses = map[string]bool{
	"draft": true, "sent": true, "accepted": true,
	"declined": true, "archived": true,
}

// Units is the unit-of-measure picklist shown in the grid, in display order.
var Units = []string{"EA", "FT", "LF", "SF", "SY", "HR", "DAY", "LS", "BOX", "RL", "PK"}
