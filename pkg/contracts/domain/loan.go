package domain

// StatusUnknown is the loan status assigned when the export carries no value.
const StatusUnknown = "unknown"

// StatusCurrent is the roll-rate destination used when a record has no loan status.
const StatusCurrent = "current"

// DelinquencyStatuses are the canonical past-due loan status labels.
// A record whose loan status matches one of these counts toward the
// portfolio delinquency rate.
var DelinquencyStatuses = []string{
	"30-59 days past due",
	"60-89 days past due",
	"90+ days past due",
}

// LoanRecord is one normalized row of a loan portfolio export.
// All numeric fields are non-negative after normalization; cells that
// fail to parse are coerced to zero rather than rejected.
type LoanRecord struct {
	LoanAmount       float64 `json:"loan_amount"`
	AppraisedValue   float64 `json:"appraised_value"`
	BorrowerIncome   float64 `json:"borrower_income"`
	MonthlyDebt      float64 `json:"monthly_debt"`
	InterestRate     float64 `json:"interest_rate"`
	PrincipalBalance float64 `json:"principal_balance"`
	LoanStatus       string  `json:"loan_status"`
	DPDStatus        string  `json:"dpd_status"`
}

// IsDelinquent reports whether the record carries one of the canonical
// past-due status labels.
func (r LoanRecord) IsDelinquent() bool {
	for _, status := range DelinquencyStatuses {
		if r.LoanStatus == status {
			return true
		}
	}
	return false
}

// MonthlyIncome returns the implied monthly income from the annual
// borrower income. Records with non-positive monthly income are excluded
// from debt-to-income accumulation.
func (r LoanRecord) MonthlyIncome() float64 {
	return r.BorrowerIncome / 12
}
