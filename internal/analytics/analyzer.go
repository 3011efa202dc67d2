package analytics

import (
	"context"
	"log/slog"
	"time"

	"loanpulse/internal/dataprocessing"
	"loanpulse/pkg/contracts/domain"
)

// Config holds analyzer policy options.
type Config struct {
	// StrictSchema rejects inputs whose header is missing any expected
	// column instead of defaulting the absent values.
	StrictSchema bool
	// ColorAssigner overrides the treemap color cycle. Nil uses the
	// default palette.
	ColorAssigner ColorAssigner
	// Now overrides the clock used to label the growth projection.
	// Nil uses time.Now.
	Now func() time.Time
}

// Analyzer sequences the full pipeline: parse, normalize, aggregate.
// It holds no state across invocations; every call returns a fresh
// ProcessedAnalytics derived only from its input.
type Analyzer struct {
	logger     *slog.Logger
	parser     *dataprocessing.Parser
	normalizer *dataprocessing.Normalizer
	assign     ColorAssigner
	now        func() time.Time
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(logger *slog.Logger, cfg Config) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Analyzer{
		logger:     logger.With(slog.String("component", "analyzer")),
		parser:     dataprocessing.NewParser(logger),
		normalizer: dataprocessing.NewNormalizer(logger, dataprocessing.NormalizerConfig{StrictSchema: cfg.StrictSchema}),
		assign:     cfg.ColorAssigner,
		now:        now,
	}
}

// Analyze runs the full pipeline on raw delimited text. It always
// produces a renderable result: bad cells coerce to defaults and an
// empty input yields the documented zero-value analytics.
func (a *Analyzer) Analyze(ctx context.Context, text string) *domain.ProcessedAnalytics {
	start := time.Now()

	rows := a.parser.Parse(text)
	records := a.normalizer.NormalizeAll(rows)

	result := a.AnalyzeRecords(ctx, records)

	a.logger.InfoContext(ctx, "analytics pipeline completed",
		slog.Int("rows", len(rows)),
		slog.Int("records", len(records)),
		slog.Duration("duration", time.Since(start)))

	return result
}

// AnalyzeRecords aggregates already-normalized records into the single
// analytics output. The input slice is passed through unchanged for
// downstream consumers.
func (a *Analyzer) AnalyzeRecords(ctx context.Context, records []domain.LoanRecord) *domain.ProcessedAnalytics {
	kpis := ComputeKPIs(records)

	result := &domain.ProcessedAnalytics{
		KPIs:             kpis,
		Treemap:          ComputeSegments(records, a.assign),
		RollRates:        ComputeRollRates(records),
		GrowthProjection: ProjectGrowth(kpis.PortfolioYield, kpis.LoanCount, a.now()),
		Loans:            records,
	}

	a.logger.DebugContext(ctx, "aggregations computed",
		slog.Int("loan_count", kpis.LoanCount),
		slog.Int("segments", len(result.Treemap)),
		slog.Int("roll_rates", len(result.RollRates)))

	return result
}
