package analytics

import (
	"math"

	"loanpulse/pkg/contracts/domain"
)

// ComputeKPIs computes the portfolio-level scalar indicators.
//
// The portfolio yield is the principal-balance-weighted average interest
// rate; interest rates arrive already expressed as percentages, so no
// further scaling is applied. Appraised values are floored at 1 before
// use as an LTV divisor, and borrowers with non-positive implied monthly
// income contribute nothing to the DTI numerator while still counting in
// the denominator. All percentage KPIs are 0 for an empty portfolio.
func ComputeKPIs(records []domain.LoanRecord) domain.KpiSet {
	count := len(records)

	var (
		delinquent   int
		weightedRate float64
		totalBalance float64
		ltvSum       float64
		dtiSum       float64
	)

	for _, r := range records {
		if r.IsDelinquent() {
			delinquent++
		}

		weightedRate += r.InterestRate * r.PrincipalBalance
		totalBalance += r.PrincipalBalance

		ltvSum += r.LoanAmount / math.Max(r.AppraisedValue, 1)

		if income := r.MonthlyIncome(); income > 0 {
			dtiSum += r.MonthlyDebt / income
		}
	}

	kpis := domain.KpiSet{LoanCount: count}

	if count > 0 {
		kpis.DelinquencyRate = round2(float64(delinquent) / float64(count) * 100)
	}
	if totalBalance > 0 {
		kpis.PortfolioYield = round2(weightedRate / totalBalance)
	}

	// Denominator floored at 1 so an empty portfolio reads 0, not NaN.
	divisor := math.Max(float64(count), 1)
	kpis.AverageLTV = round1(ltvSum / divisor * 100)
	kpis.AverageDTI = round1(dtiSum / divisor * 100)

	return kpis
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to 1 decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
