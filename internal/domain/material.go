package domain

import "time"

// MaterialCatalogEntry is read-mostly reference data used to seed new
// line items. It never participates in rollup computation directly.
type MaterialCatalogEntry struct {
	ID                int64
	Category          string
	ItemName          string
	Description       string
	Unit              string
	MaterialCost      float64
	TypicalLaborHours float64
	Manufacturer      string
	PartNumber        string
	DateAdded         time.Time
	LastUpdated       time.Time
}

// SeedRow copies the catalog entry's pricing seed onto a row. Quantity and
// rate/markup fields keep their current values; the caller persists the
// result through the normal edit path.
func (m MaterialCatalogEntry) SeedRow(li LineItem) LineItem {
	li.Category = CoalesceStr(m.Category, li.Category)
	li.Description = CoalesceStr(m.Description, m.ItemName)
	li.Unit = CoalesceStr(m.Unit, li.Unit)
	li.MaterialCost = m.MaterialCost
	li.LaborHours = m.TypicalLaborHours
	return li
}
