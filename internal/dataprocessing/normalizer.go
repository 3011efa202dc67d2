package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"

	"loanpulse/pkg/contracts/domain"
)

// ExpectedColumns lists the eight column names a portfolio export must
// carry. Order does not matter; matching is case-insensitive.
var ExpectedColumns = []string{
	"loan_amount",
	"appraised_value",
	"borrower_income",
	"monthly_debt",
	"loan_status",
	"interest_rate",
	"principal_balance",
	"dpd_status",
}

// NormalizerConfig holds normalization policy options.
type NormalizerConfig struct {
	// StrictSchema rejects the whole input when any expected column is
	// missing from the header, instead of defaulting absent columns.
	StrictSchema bool
}

// Normalizer maps header-indexed rows into typed loan records.
type Normalizer struct {
	logger *slog.Logger
	strict bool
}

// NewNormalizer creates a normalizer with the given policy.
func NewNormalizer(logger *slog.Logger, cfg NormalizerConfig) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		logger: logger.With(slog.String("component", "normalizer")),
		strict: cfg.StrictSchema,
	}
}

// NormalizeAll converts parsed rows into loan records. The first row is
// the header; columns may appear in any order. In strict mode a header
// missing any expected column yields an empty record slice for the whole
// input. In lenient mode absent columns normalize to their defaults.
func (n *Normalizer) NormalizeAll(rows [][]string) []domain.LoanRecord {
	records := []domain.LoanRecord{}
	if len(rows) == 0 {
		return records
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}

	if n.strict && !hasAllColumns(header) {
		n.logger.Warn("header missing expected columns, rejecting input",
			slog.Any("header", header))
		return records
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	for _, row := range rows[1:] {
		records = append(records, n.normalizeRow(index, row))
	}

	n.logger.Debug("normalized rows", slog.Int("records", len(records)))
	return records
}

// normalizeRow builds one loan record from a data row. Values default to
// the empty string when the row is shorter than the header.
func (n *Normalizer) normalizeRow(index map[string]int, row []string) domain.LoanRecord {
	value := func(column string) string {
		idx, ok := index[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	loanStatus := strings.TrimSpace(value("loan_status"))
	if loanStatus == "" {
		loanStatus = domain.StatusUnknown
	}

	return domain.LoanRecord{
		LoanAmount:       CoerceNumber(value("loan_amount")),
		AppraisedValue:   CoerceNumber(value("appraised_value")),
		BorrowerIncome:   CoerceNumber(value("borrower_income")),
		MonthlyDebt:      CoerceNumber(value("monthly_debt")),
		InterestRate:     CoerceNumber(value("interest_rate")),
		PrincipalBalance: CoerceNumber(value("principal_balance")),
		LoanStatus:       loanStatus,
		DPDStatus:        strings.TrimSpace(value("dpd_status")),
	}
}

// CoerceNumber parses a currency- or percent-formatted cell into a float.
// Every character that is not a digit, decimal point, or minus sign is
// stripped first, so "$1,234.56", "5.2%" and " 115000 " all parse. Any
// parse failure, including an empty cell, yields zero.
func CoerceNumber(cell string) float64 {
	var b strings.Builder
	for _, ch := range cell {
		if (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' {
			b.WriteRune(ch)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// hasAllColumns reports whether every expected column is present in the
// lower-cased header.
func hasAllColumns(header []string) bool {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	for _, required := range ExpectedColumns {
		if !present[required] {
			return false
		}
	}
	return true
}
