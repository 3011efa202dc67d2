package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanpulse/pkg/contracts/domain"
)

const portfolioHeader = "loan_amount,appraised_value,borrower_income,monthly_debt,loan_status,interest_rate,principal_balance,dpd_status"

func fixedClock() time.Time {
	return time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
}

func newTestAnalyzer(t *testing.T, cfg Config) *Analyzer {
	t.Helper()
	if cfg.Now == nil {
		cfg.Now = fixedClock
	}
	return NewAnalyzer(slog.Default(), cfg)
}

func TestAnalyzer_SingleCurrentLoan(t *testing.T) {
	analyzer := newTestAnalyzer(t, Config{})
	text := portfolioHeader + "\n120000,200000,90000,1200,current,5.2,115000,current\n"

	result := analyzer.Analyze(context.Background(), text)
	require.NotNil(t, result)

	assert.Equal(t, 0.0, result.KPIs.DelinquencyRate)
	assert.Equal(t, 5.2, result.KPIs.PortfolioYield)
	assert.Equal(t, 1, result.KPIs.LoanCount)

	require.Len(t, result.Treemap, 1)
	assert.Equal(t, "current", result.Treemap[0].Label)
	assert.Equal(t, 115000.0, result.Treemap[0].Value)

	require.Len(t, result.RollRates, 1)
	assert.Equal(t, "current", result.RollRates[0].From)
	assert.Equal(t, "current", result.RollRates[0].To)
	assert.Equal(t, 100.0, result.RollRates[0].Percent)

	require.Len(t, result.Loans, 1)
}

func TestAnalyzer_DelinquencyRateAcrossStatuses(t *testing.T) {
	analyzer := newTestAnalyzer(t, Config{})
	text := portfolioHeader + "\n" +
		"100000,150000,80000,900,30-59 days past due,6.0,95000,30-59 days past due\n" +
		"100000,150000,80000,900,current,4.0,95000,current\n"

	result := analyzer.Analyze(context.Background(), text)
	assert.Equal(t, 50.0, result.KPIs.DelinquencyRate)
}

func TestAnalyzer_EmptyInputDefaults(t *testing.T) {
	analyzer := newTestAnalyzer(t, Config{})

	result := analyzer.Analyze(context.Background(), "")
	require.NotNil(t, result)

	assert.Equal(t, domain.KpiSet{}, result.KPIs)
	assert.Empty(t, result.Treemap)
	assert.Empty(t, result.RollRates)
	assert.Empty(t, result.Loans)

	require.Len(t, result.GrowthProjection, domain.GrowthPointCount)
	assert.Equal(t, 1.2, result.GrowthProjection[0].Yield)
	assert.Equal(t, 100, result.GrowthProjection[0].LoanVolume)
}

func TestAnalyzer_Idempotence(t *testing.T) {
	analyzer := newTestAnalyzer(t, Config{})
	text := portfolioHeader + "\n" +
		"\"$120,000\",200000,90000,1200,current,5.2%,\"$115,000\",current\n" +
		"80000,100000,60000,800,30-59 days past due,7.1,79000,30-59 days past due\n"

	first := analyzer.Analyze(context.Background(), text)
	second := analyzer.Analyze(context.Background(), text)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
}

func TestAnalyzer_TreemapConservesPrincipal(t *testing.T) {
	analyzer := newTestAnalyzer(t, Config{})
	text := portfolioHeader + "\n" +
		"1,1,1,1,current,1,115000,current\n" +
		"1,1,1,1,30-59 days past due,1,42000.5,30-59 days past due\n" +
		"1,1,1,1,unknown,1,0,\n"

	result := analyzer.Analyze(context.Background(), text)

	var segmentTotal float64
	for _, entry := range result.Treemap {
		segmentTotal += entry.Value
	}
	assert.Equal(t, result.TotalPrincipal(), segmentTotal)
}

func TestAnalyzer_QuotedFieldWithDelimiter(t *testing.T) {
	analyzer := newTestAnalyzer(t, Config{})
	text := portfolioHeader + "\n" +
		"\"123, Main St\",200000,90000,1200,current,5.2,115000,current\n"

	result := analyzer.Analyze(context.Background(), text)
	require.Len(t, result.Loans, 1)
	// "123, Main St" stays one field; numeric coercion strips the text.
	assert.Equal(t, 123.0, result.Loans[0].LoanAmount)
	assert.Equal(t, 115000.0, result.Loans[0].PrincipalBalance)
}

func TestAnalyzer_StrictSchemaRejectsIncompleteHeader(t *testing.T) {
	strict := newTestAnalyzer(t, Config{StrictSchema: true})
	text := "loan_amount,appraised_value\n120000,200000\n"

	result := strict.Analyze(context.Background(), text)
	assert.Empty(t, result.Loans)
	assert.Equal(t, 0, result.KPIs.LoanCount)
	// The projection still renders from its fallback seeds.
	require.Len(t, result.GrowthProjection, domain.GrowthPointCount)
}

func TestAnalyzer_GrowthSeededFromYield(t *testing.T) {
	analyzer := newTestAnalyzer(t, Config{})
	text := portfolioHeader + "\n120000,200000,90000,1200,current,5.2,115000,current\n"

	result := analyzer.Analyze(context.Background(), text)
	require.Len(t, result.GrowthProjection, domain.GrowthPointCount)
	assert.Equal(t, 5.2, result.GrowthProjection[0].Yield)
	assert.Equal(t, 1, result.GrowthProjection[0].LoanVolume)
	assert.Equal(t, "Aug 2026", result.GrowthProjection[0].Label)
}
