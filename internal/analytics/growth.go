package analytics

import (
	"time"

	"loanpulse/pkg/contracts/domain"
)

const (
	// Fallback seeds used when the portfolio produced no yield or count.
	fallbackYield  = 1.2
	fallbackVolume = 100

	// Linear step sizes per projected month.
	yieldStep  = 0.15
	volumeStep = 15
)

// ProjectGrowth derives the synthetic forward series from the computed
// portfolio yield and loan count. It is a deterministic linear synthesis
// that drives a forward-looking chart placeholder, not a statistical
// forecast. The series always has exactly domain.GrowthPointCount points,
// labelled with consecutive months starting at now.
func ProjectGrowth(portfolioYield float64, loanCount int, now time.Time) []domain.GrowthPoint {
	startYield := portfolioYield
	if startYield == 0 {
		startYield = fallbackYield
	}
	startVolume := loanCount
	if startVolume == 0 {
		startVolume = fallbackVolume
	}

	// Anchor to the first of the month so adding months never skips one.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	points := make([]domain.GrowthPoint, domain.GrowthPointCount)
	for i := range points {
		points[i] = domain.GrowthPoint{
			Label:      anchor.AddDate(0, i, 0).Format("Jan 2006"),
			Yield:      round2(startYield + float64(i)*yieldStep),
			LoanVolume: startVolume + i*volumeStep,
		}
	}
	return points
}
