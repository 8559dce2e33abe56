package domain

// CompanySettings is the singleton default-value source for new rows and
// projects, plus the identity block printed on proposals.
type CompanySettings struct {
	CompanyName string
	Address     string
	Phone       string
	Email       string
	Website     string
	LogoPath    string

	DefaultLaborRate         float64
	DefaultMaterialMarkupPct float64
	DefaultLaborMarkupPct    float64
	DefaultOverheadPct       float64
	DefaultProfitPct         float64
	MaterialTaxRatePct       float64
	ContingencyPct           float64

	ProposalTerms string
}

// RowDefaults resolves the settings into per-row defaults, falling back
// to the hard constants for anything unset.
func (s CompanySettings) RowDefaults(firstCategory string) RowDefaults {
	return RowDefaults{
		Category:          firstCategory,
		Unit:              FallbackUnit,
		LaborRate:         NonZeroOr(s.DefaultLaborRate, FallbackLaborRate),
		MaterialMarkupPct: s.DefaultMaterialMarkupPct,
		LaborMarkupPct:    s.DefaultLaborMarkupPct,
		OverheadPct:       NonZeroOr(s.DefaultOverheadPct, FallbackOverheadPct),
		ProfitPct:         NonZeroOr(s.DefaultProfitPct, FallbackProfitPct),
	}
}
