package analytics

import (
	"loanpulse/pkg/contracts/domain"
)

// ComputeRollRates builds the delinquency transition matrix. Records are
// counted by (dpd_status, loan_status) pair; records with an empty
// dpd_status are excluded entirely, and an empty loan_status rolls to
// "current". Counts convert to per-bucket percentages that sum to 100
// within rounding; a bucket with no members contributes no entries.
func ComputeRollRates(records []domain.LoanRecord) []domain.RollRateEntry {
	counts := make(map[string]map[string]int)
	var fromOrder []string
	toOrder := make(map[string][]string)

	for _, r := range records {
		from := r.DPDStatus
		if from == "" {
			continue
		}
		to := r.LoanStatus
		if to == "" {
			to = domain.StatusCurrent
		}

		bucket, ok := counts[from]
		if !ok {
			bucket = make(map[string]int)
			counts[from] = bucket
			fromOrder = append(fromOrder, from)
		}
		if _, seen := bucket[to]; !seen {
			toOrder[from] = append(toOrder[from], to)
		}
		bucket[to]++
	}

	entries := []domain.RollRateEntry{}
	for _, from := range fromOrder {
		bucket := counts[from]
		var total int
		for _, n := range bucket {
			total += n
		}
		if total == 0 {
			continue
		}
		for _, to := range toOrder[from] {
			entries = append(entries, domain.RollRateEntry{
				From:    from,
				To:      to,
				Percent: round1(float64(bucket[to]) / float64(total) * 100),
			})
		}
	}
	return entries
}
