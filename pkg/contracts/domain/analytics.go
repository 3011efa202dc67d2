package domain

// KpiSet holds the portfolio-level scalar indicators.
// Percentage-style values default to zero on an empty portfolio; an
// empty input is not an error condition.
type KpiSet struct {
	DelinquencyRate float64 `json:"delinquency_rate"` // percent, 2 decimals
	PortfolioYield  float64 `json:"portfolio_yield"`  // percent, 2 decimals
	AverageLTV      float64 `json:"average_ltv"`      // percent, 1 decimal
	AverageDTI      float64 `json:"average_dti"`      // percent, 1 decimal
	LoanCount       int     `json:"loan_count"`
}

// TreemapEntry is one proportional-area chart segment: principal balance
// aggregated for a single loan status. Color is a presentation hint only.
type TreemapEntry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// RollRateEntry is one cell of the delinquency transition matrix: the
// share of loans in a DPD bucket that ended up in a given loan status.
type RollRateEntry struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Percent float64 `json:"percent"` // 1 decimal, sums to ~100 per From bucket
}

// GrowthPoint is one month of the synthetic forward growth series.
type GrowthPoint struct {
	Label      string  `json:"label"`
	Yield      float64 `json:"yield"`
	LoanVolume int     `json:"loanVolume"`
}

// GrowthPointCount is the fixed length of the growth projection series.
const GrowthPointCount = 6

// ProcessedAnalytics is the single output of the analytics pipeline.
// It is created fresh on every invocation and never mutated afterwards.
type ProcessedAnalytics struct {
	KPIs             KpiSet          `json:"kpis"`
	Treemap          []TreemapEntry  `json:"treemap"`
	RollRates        []RollRateEntry `json:"rollRates"`
	GrowthProjection []GrowthPoint   `json:"growthProjection"`
	Loans            []LoanRecord    `json:"loans"`
}

// TotalPrincipal sums principal balance across all loans. The treemap
// entries conserve this total by construction.
func (p *ProcessedAnalytics) TotalPrincipal() float64 {
	var total float64
	for _, loan := range p.Loans {
		total += loan.PrincipalBalance
	}
	return total
}
