package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanpulse/pkg/contracts/domain"
)

func TestProjectGrowth(t *testing.T) {
	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)

	t.Run("seeded from computed values", func(t *testing.T) {
		points := ProjectGrowth(5.2, 40, now)
		require.Len(t, points, domain.GrowthPointCount)

		assert.Equal(t, domain.GrowthPoint{Label: "Aug 2026", Yield: 5.2, LoanVolume: 40}, points[0])
		assert.Equal(t, domain.GrowthPoint{Label: "Sep 2026", Yield: 5.35, LoanVolume: 55}, points[1])
		assert.Equal(t, domain.GrowthPoint{Label: "Jan 2027", Yield: 5.95, LoanVolume: 115}, points[5])
	})

	t.Run("fallback seeds on empty portfolio", func(t *testing.T) {
		points := ProjectGrowth(0, 0, now)
		require.Len(t, points, domain.GrowthPointCount)

		assert.Equal(t, 1.2, points[0].Yield)
		assert.Equal(t, 100, points[0].LoanVolume)
		assert.Equal(t, 1.95, points[5].Yield)
		assert.Equal(t, 175, points[5].LoanVolume)
	})

	t.Run("month labels stay consecutive across year end", func(t *testing.T) {
		dec := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
		points := ProjectGrowth(1, 1, dec)

		labels := make([]string, 0, len(points))
		for _, p := range points {
			labels = append(labels, p.Label)
		}
		assert.Equal(t, []string{"Dec 2026", "Jan 2027", "Feb 2027", "Mar 2027", "Apr 2027", "May 2027"}, labels)
	})
}
