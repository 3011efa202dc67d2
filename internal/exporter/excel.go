package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"loanpulse/pkg/contracts/domain"
)

// WorkbookFile is the default Excel export file name.
const WorkbookFile = "analytics.xlsx"

// Sheet names of the generated workbook, one per analytics section.
const (
	sheetKPIs      = "KPIs"
	sheetSegments  = "Segments"
	sheetRollRates = "Roll Rates"
	sheetGrowth    = "Growth Projection"
	sheetLoans     = "Loans"
)

// ExcelExporter writes analytics workbooks via excelize.
type ExcelExporter struct {
	logger *slog.Logger
}

// NewExcelExporter creates an Excel exporter.
func NewExcelExporter(logger *slog.Logger) *ExcelExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelExporter{logger: logger.With(slog.String("component", "excel_exporter"))}
}

// WriteWorkbook writes a workbook with one sheet per analytics section
// and returns the path written.
func (e *ExcelExporter) WriteWorkbook(ctx context.Context, dir string, analytics *domain.ProcessedAnalytics) (string, error) {
	if analytics == nil {
		return "", fmt.Errorf("nil analytics")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeKPISheet(f, analytics.KPIs); err != nil {
		return "", err
	}
	if err := e.writeSegmentsSheet(f, analytics.Treemap); err != nil {
		return "", err
	}
	if err := e.writeRollRatesSheet(f, analytics.RollRates); err != nil {
		return "", err
	}
	if err := e.writeGrowthSheet(f, analytics.GrowthProjection); err != nil {
		return "", err
	}
	if err := e.writeLoansSheet(f, analytics.Loans); err != nil {
		return "", err
	}

	// The default sheet is replaced by the KPI sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	path := filepath.Join(dir, WorkbookFile)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.InfoContext(ctx, "Excel workbook written",
		slog.String("path", path),
		slog.Int("loan_count", analytics.KPIs.LoanCount))

	return path, nil
}

func (e *ExcelExporter) writeKPISheet(f *excelize.File, kpis domain.KpiSet) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Delinquency Rate (%)", kpis.DelinquencyRate},
		{"Portfolio Yield (%)", kpis.PortfolioYield},
		{"Average LTV (%)", kpis.AverageLTV},
		{"Average DTI (%)", kpis.AverageDTI},
		{"Loan Count", kpis.LoanCount},
	}
	return e.writeSheet(f, sheetKPIs, rows)
}

func (e *ExcelExporter) writeSegmentsSheet(f *excelize.File, segments []domain.TreemapEntry) error {
	rows := [][]interface{}{{"Status", "Balance", "Color"}}
	for _, seg := range segments {
		rows = append(rows, []interface{}{seg.Label, seg.Value, seg.Color})
	}
	return e.writeSheet(f, sheetSegments, rows)
}

func (e *ExcelExporter) writeRollRatesSheet(f *excelize.File, rollRates []domain.RollRateEntry) error {
	rows := [][]interface{}{{"From", "To", "Percent"}}
	for _, rr := range rollRates {
		rows = append(rows, []interface{}{rr.From, rr.To, rr.Percent})
	}
	return e.writeSheet(f, sheetRollRates, rows)
}

func (e *ExcelExporter) writeGrowthSheet(f *excelize.File, points []domain.GrowthPoint) error {
	rows := [][]interface{}{{"Month", "Yield", "Loan Volume"}}
	for _, gp := range points {
		rows = append(rows, []interface{}{gp.Label, gp.Yield, gp.LoanVolume})
	}
	return e.writeSheet(f, sheetGrowth, rows)
}

func (e *ExcelExporter) writeLoansSheet(f *excelize.File, loans []domain.LoanRecord) error {
	rows := [][]interface{}{{
		"Loan Amount", "Appraised Value", "Borrower Income", "Monthly Debt",
		"Loan Status", "Interest Rate", "Principal Balance", "DPD Status",
	}}
	for _, loan := range loans {
		rows = append(rows, []interface{}{
			loan.LoanAmount, loan.AppraisedValue, loan.BorrowerIncome, loan.MonthlyDebt,
			loan.LoanStatus, loan.InterestRate, loan.PrincipalBalance, loan.DPDStatus,
		})
	}
	return e.writeSheet(f, sheetLoans, rows)
}

// writeSheet creates a sheet and fills it row by row via a stream writer.
func (e *ExcelExporter) writeSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("failed to create stream writer for %s: %w", name, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", i, err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i, name, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet %s: %w", name, err)
	}
	return nil
}
