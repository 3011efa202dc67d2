package analytics

import (
	"loanpulse/pkg/contracts/domain"
)

// DefaultPalette is the fixed 5-entry color cycle assigned to treemap
// segments. Colors are presentation hints and carry no semantic meaning.
var DefaultPalette = []string{
	"#3b82f6",
	"#10b981",
	"#f59e0b",
	"#ef4444",
	"#8b5cf6",
}

// ColorAssigner maps a segment's discovery index to a display color.
// Keeping it injectable keeps presentation knowledge out of the
// aggregation itself.
type ColorAssigner func(index int) string

// PaletteAssigner returns an assigner that cycles through the given
// palette by index modulo its length.
func PaletteAssigner(palette []string) ColorAssigner {
	return func(index int) string {
		if len(palette) == 0 {
			return ""
		}
		return palette[index%len(palette)]
	}
}

// ComputeSegments groups principal balance by loan status. Segments keep
// first-seen order so repeated runs over the same input are identical;
// callers may re-sort for rendering. The sum of segment values equals the
// sum of principal balances across all records.
func ComputeSegments(records []domain.LoanRecord, assign ColorAssigner) []domain.TreemapEntry {
	if assign == nil {
		assign = PaletteAssigner(DefaultPalette)
	}

	totals := make(map[string]float64, len(records))
	var order []string
	for _, r := range records {
		status := r.LoanStatus
		if status == "" {
			status = domain.StatusUnknown
		}
		if _, seen := totals[status]; !seen {
			order = append(order, status)
		}
		totals[status] += r.PrincipalBalance
	}

	entries := make([]domain.TreemapEntry, 0, len(order))
	for i, status := range order {
		entries = append(entries, domain.TreemapEntry{
			Label: status,
			Value: totals[status],
			Color: assign(i),
		})
	}
	return entries
}
