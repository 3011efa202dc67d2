package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"loanpulse/pkg/contracts/domain"
)

// Section file names produced by a CSV report export.
const (
	KPIFileName    = "kpis.csv"
	SegmentsFile   = "segments.csv"
	RollRatesFile  = "roll_rates.csv"
	GrowthFile     = "growth_projection.csv"
	LoansFile      = "loans.csv"
	JSONReportFile = "analytics.json"
)

// loanHeaders mirrors the normalized input columns so an exported loans
// file can be re-analyzed as an upload.
var loanHeaders = []string{
	"loan_amount", "appraised_value", "borrower_income", "monthly_debt",
	"loan_status", "interest_rate", "principal_balance", "dpd_status",
}

// ReportExporter writes ProcessedAnalytics reports to disk.
type ReportExporter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewReportExporter creates a report exporter backed by the given CSV writer.
func NewReportExporter(csv *CSVWriter, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	if csv == nil {
		csv = NewCSVWriter(logger)
	}
	return &ReportExporter{
		csv:    csv,
		logger: logger.With(slog.String("component", "report_exporter")),
	}
}

// jsonReport wraps the analytics payload with export metadata.
type jsonReport struct {
	GeneratedAt time.Time                  `json:"generated_at"`
	Generator   string                     `json:"generator"`
	Analytics   *domain.ProcessedAnalytics `json:"analytics"`
}

// WriteJSON writes the full analytics payload, with metadata, to a
// single JSON document. This export is lossless.
func (e *ReportExporter) WriteJSON(ctx context.Context, dir string, analytics *domain.ProcessedAnalytics) (string, error) {
	if analytics == nil {
		return "", fmt.Errorf("nil analytics")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	report := jsonReport{
		GeneratedAt: time.Now().UTC(),
		Generator:   "loanpulse",
		Analytics:   analytics,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analytics report: %w", err)
	}

	path := filepath.Join(dir, JSONReportFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write analytics report: %w", err)
	}

	e.logger.InfoContext(ctx, "JSON report written",
		slog.String("path", path),
		slog.Int("loan_count", analytics.KPIs.LoanCount))

	return path, nil
}

// WriteCSV writes one CSV file per analytics section into dir and
// returns the paths written.
func (e *ReportExporter) WriteCSV(ctx context.Context, dir string, analytics *domain.ProcessedAnalytics) ([]string, error) {
	if analytics == nil {
		return nil, fmt.Errorf("nil analytics")
	}

	var paths []string
	write := func(name string, headers []string, records [][]string) error {
		path := filepath.Join(dir, name)
		if err := e.csv.WriteSimpleCSV(path, headers, records); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		paths = append(paths, path)
		return nil
	}

	kpiRecords := [][]string{
		{"delinquency_rate", formatFloat(analytics.KPIs.DelinquencyRate)},
		{"portfolio_yield", formatFloat(analytics.KPIs.PortfolioYield)},
		{"average_ltv", formatFloat(analytics.KPIs.AverageLTV)},
		{"average_dti", formatFloat(analytics.KPIs.AverageDTI)},
		{"loan_count", strconv.Itoa(analytics.KPIs.LoanCount)},
	}
	if err := write(KPIFileName, []string{"metric", "value"}, kpiRecords); err != nil {
		return nil, err
	}

	segRecords := make([][]string, 0, len(analytics.Treemap))
	for _, seg := range analytics.Treemap {
		segRecords = append(segRecords, []string{seg.Label, formatFloat(seg.Value), seg.Color})
	}
	if err := write(SegmentsFile, []string{"status", "balance", "color"}, segRecords); err != nil {
		return nil, err
	}

	rollRecords := make([][]string, 0, len(analytics.RollRates))
	for _, rr := range analytics.RollRates {
		rollRecords = append(rollRecords, []string{rr.From, rr.To, formatFloat(rr.Percent)})
	}
	if err := write(RollRatesFile, []string{"from_status", "to_status", "percent"}, rollRecords); err != nil {
		return nil, err
	}

	growthRecords := make([][]string, 0, len(analytics.GrowthProjection))
	for _, gp := range analytics.GrowthProjection {
		growthRecords = append(growthRecords, []string{gp.Label, formatFloat(gp.Yield), strconv.Itoa(gp.LoanVolume)})
	}
	if err := write(GrowthFile, []string{"month", "yield", "loan_volume"}, growthRecords); err != nil {
		return nil, err
	}

	if err := write(LoansFile, loanHeaders, loanRecordsToRows(analytics.Loans)); err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "CSV report written",
		slog.String("dir", dir),
		slog.Int("file_count", len(paths)))

	return paths, nil
}

// WriteLoansStream streams the normalized loans to a single CSV file.
// Used for large portfolios where buffering all records is wasteful.
func (e *ReportExporter) WriteLoansStream(ctx context.Context, path string, loans []domain.LoanRecord) error {
	stream, err := e.csv.CreateStreamWriter(path, loanHeaders)
	if err != nil {
		return err
	}

	for i, loan := range loans {
		if err := ctx.Err(); err != nil {
			stream.Close()
			return err
		}
		if err := stream.WriteRecord(loanToRow(loan)); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write loan %d: %w", i, err)
		}
	}

	return stream.Close()
}

func loanRecordsToRows(loans []domain.LoanRecord) [][]string {
	rows := make([][]string, 0, len(loans))
	for _, loan := range loans {
		rows = append(rows, loanToRow(loan))
	}
	return rows
}

func loanToRow(loan domain.LoanRecord) []string {
	return []string{
		formatFloat(loan.LoanAmount),
		formatFloat(loan.AppraisedValue),
		formatFloat(loan.BorrowerIncome),
		formatFloat(loan.MonthlyDebt),
		loan.LoanStatus,
		formatFloat(loan.InterestRate),
		formatFloat(loan.PrincipalBalance),
		loan.DPDStatus,
	}
}

// formatFloat renders values without scientific notation or trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
