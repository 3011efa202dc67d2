package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loanpulse/pkg/contracts/domain"
)

func TestComputeKPIs(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.LoanRecord
		want    domain.KpiSet
	}{
		{
			name:    "empty portfolio shows zero, not an error",
			records: nil,
			want:    domain.KpiSet{},
		},
		{
			name: "single current loan",
			records: []domain.LoanRecord{
				{
					LoanAmount:       120000,
					AppraisedValue:   200000,
					BorrowerIncome:   90000,
					MonthlyDebt:      1200,
					InterestRate:     5.2,
					PrincipalBalance: 115000,
					LoanStatus:       "current",
					DPDStatus:        "current",
				},
			},
			want: domain.KpiSet{
				DelinquencyRate: 0,
				PortfolioYield:  5.2,
				AverageLTV:      60.0,
				AverageDTI:      16.0,
				LoanCount:       1,
			},
		},
		{
			name: "half the portfolio past due",
			records: []domain.LoanRecord{
				{LoanStatus: "30-59 days past due", PrincipalBalance: 100000, InterestRate: 6},
				{LoanStatus: "current", PrincipalBalance: 100000, InterestRate: 4},
			},
			want: domain.KpiSet{
				DelinquencyRate: 50.0,
				PortfolioYield:  5.0,
				AverageLTV:      0,
				AverageDTI:      0,
				LoanCount:       2,
			},
		},
		{
			name: "all delinquency buckets counted",
			records: []domain.LoanRecord{
				{LoanStatus: "30-59 days past due"},
				{LoanStatus: "60-89 days past due"},
				{LoanStatus: "90+ days past due"},
				{LoanStatus: "current"},
			},
			want: domain.KpiSet{
				DelinquencyRate: 75.0,
				LoanCount:       4,
			},
		},
		{
			name: "yield weighted by principal balance",
			records: []domain.LoanRecord{
				{InterestRate: 10, PrincipalBalance: 300000, LoanStatus: "current"},
				{InterestRate: 2, PrincipalBalance: 100000, LoanStatus: "current"},
			},
			want: domain.KpiSet{
				PortfolioYield: 8.0,
				LoanCount:      2,
			},
		},
		{
			name: "zero appraised value floored at one",
			records: []domain.LoanRecord{
				{LoanAmount: 50, AppraisedValue: 0, LoanStatus: "current"},
			},
			want: domain.KpiSet{
				AverageLTV: 5000.0,
				LoanCount:  1,
			},
		},
		{
			name: "zero income excluded from DTI numerator only",
			records: []domain.LoanRecord{
				{BorrowerIncome: 0, MonthlyDebt: 1000, LoanStatus: "current"},
				{BorrowerIncome: 60000, MonthlyDebt: 1000, LoanStatus: "current"},
			},
			// 1000 / (60000/12) = 0.2 over 2 records = 10%.
			want: domain.KpiSet{
				AverageDTI: 10.0,
				LoanCount:  2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeKPIs(tt.records))
		})
	}
}

func TestComputeKPIs_Rounding(t *testing.T) {
	records := []domain.LoanRecord{
		{LoanStatus: "30-59 days past due"},
		{LoanStatus: "current"},
		{LoanStatus: "current"},
	}

	kpis := ComputeKPIs(records)
	// 1/3 expressed as a percent, rounded to 2 decimals.
	assert.Equal(t, 33.33, kpis.DelinquencyRate)
}
