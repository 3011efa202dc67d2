// Package services composes the pipeline stages behind use-case level
// operations shared by the HTTP transport and the CLI.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"loanpulse/internal/analytics"
	"loanpulse/internal/dataprocessing"
	"loanpulse/internal/errors"
	"loanpulse/internal/exporter"
	"loanpulse/internal/infrastructure"
	"loanpulse/internal/validation"
	"loanpulse/pkg/contracts/domain"
)

// AnalyticsService runs validation, analysis, and export for portfolio
// uploads. It is safe for concurrent use.
type AnalyticsService struct {
	logger    *slog.Logger
	validator *validation.UploadValidator
	parser    *dataprocessing.Parser
	reports   *exporter.ReportExporter
	excel     *exporter.ExcelExporter
	metrics   *infrastructure.BusinessMetrics

	strictDefault bool

	mu        sync.Mutex
	analyzers map[bool]*analytics.Analyzer
	now       func() time.Time
	assign    analytics.ColorAssigner
}

// ServiceConfig holds the knobs of the analytics service.
type ServiceConfig struct {
	StrictSchema   bool
	MaxUploadBytes int64
	// Now and ColorAssigner are injectable for tests; nil means defaults.
	Now           func() time.Time
	ColorAssigner analytics.ColorAssigner
}

// NewAnalyticsService wires the service from its collaborators. Metrics
// may be nil, in which case instrumentation is skipped.
func NewAnalyticsService(logger *slog.Logger, cfg ServiceConfig, metrics *infrastructure.BusinessMetrics) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "analytics_service"))

	return &AnalyticsService{
		logger:        logger,
		validator:     validation.NewUploadValidator(logger, cfg.MaxUploadBytes),
		parser:        dataprocessing.NewParser(logger),
		reports:       exporter.NewReportExporter(exporter.NewCSVWriter(logger), logger),
		excel:         exporter.NewExcelExporter(logger),
		metrics:       metrics,
		strictDefault: cfg.StrictSchema,
		analyzers:     make(map[bool]*analytics.Analyzer, 2),
		now:           cfg.Now,
		assign:        cfg.ColorAssigner,
	}
}

// analyzerFor returns a cached analyzer for the given schema mode.
func (s *AnalyticsService) analyzerFor(strict bool) *analytics.Analyzer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.analyzers[strict]; ok {
		return a
	}
	a := analytics.NewAnalyzer(s.logger, analytics.Config{
		StrictSchema:  strict,
		ColorAssigner: s.assign,
		Now:           s.now,
	})
	s.analyzers[strict] = a
	return a
}

// Analyze runs the pipeline on raw delimited text using the configured
// default schema mode.
func (s *AnalyticsService) Analyze(ctx context.Context, text string) *domain.ProcessedAnalytics {
	return s.AnalyzeWithMode(ctx, text, s.strictDefault)
}

// AnalyzeWithMode runs the pipeline with an explicit schema mode.
func (s *AnalyticsService) AnalyzeWithMode(ctx context.Context, text string, strict bool) *domain.ProcessedAnalytics {
	start := time.Now()

	result := s.analyzerFor(strict).Analyze(ctx, text)

	if s.metrics != nil {
		s.metrics.AnalysesTotal.Add(ctx, 1)
		s.metrics.RowsParsed.Add(ctx, int64(result.KPIs.LoanCount))
		s.metrics.AnalysisDuration.Record(ctx, time.Since(start).Seconds())
	}

	return result
}

// AnalyzeUpload validates and analyzes an uploaded portfolio file. The
// filename may be empty for raw request bodies. In the default lenient
// mode a header missing columns is logged and analysis proceeds; in
// strict mode it is rejected.
func (s *AnalyticsService) AnalyzeUpload(ctx context.Context, filename string, size int64, r io.Reader) (*domain.ProcessedAnalytics, error) {
	if err := s.validator.ValidateFilename(filename); err != nil {
		return nil, err
	}
	if size > 0 {
		if err := s.validator.ValidateSize(size); err != nil {
			return nil, err
		}
	}

	// The limit guards against bodies whose declared size lied.
	data, err := io.ReadAll(io.LimitReader(r, s.validator.MaxBytes()+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := s.validator.ValidateSize(int64(len(data))); err != nil {
		return nil, err
	}

	text := string(data)

	if err := s.validator.ValidateHeader(s.parser.Parse(text)); err != nil {
		if s.strictDefault {
			return nil, err
		}
		infrastructure.WithError(s.logger, err).WarnContext(ctx,
			"header incomplete, continuing with lenient defaults",
			slog.String("filename", filename))
	}

	return s.Analyze(ctx, text), nil
}

// Export writes the analytics in each requested format under dir,
// running the formats in parallel. It returns the written paths keyed
// by format.
func (s *AnalyticsService) Export(ctx context.Context, dir string, result *domain.ProcessedAnalytics, formats []string) (map[string][]string, error) {
	if result == nil {
		return nil, fmt.Errorf("nil analytics")
	}
	if len(formats) == 0 {
		formats = []string{"json"}
	}

	var mu sync.Mutex
	paths := make(map[string][]string, len(formats))

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			written, err := s.exportOne(gctx, dir, result, format)
			if err != nil {
				return err
			}
			mu.Lock()
			paths[format] = written
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ExportsTotal.Add(ctx, int64(len(formats)))
	}

	s.logger.InfoContext(ctx, "export completed",
		slog.String("dir", dir),
		slog.Any("formats", formats))

	return paths, nil
}

func (s *AnalyticsService) exportOne(ctx context.Context, dir string, result *domain.ProcessedAnalytics, format string) ([]string, error) {
	switch format {
	case "csv":
		written, err := s.reports.WriteCSV(ctx, dir, result)
		if err != nil {
			return nil, errors.NewExportError("failed to write CSV report", err)
		}
		return written, nil
	case "json":
		path, err := s.reports.WriteJSON(ctx, dir, result)
		if err != nil {
			return nil, errors.NewExportError("failed to write JSON report", err)
		}
		return []string{path}, nil
	case "xlsx":
		path, err := s.excel.WriteWorkbook(ctx, dir, result)
		if err != nil {
			return nil, errors.NewExportError("failed to write Excel workbook", err)
		}
		return []string{path}, nil
	default:
		return nil, errors.NewWithDetails(errors.ErrInvalidParameter.StatusCode,
			errors.ErrInvalidParameter.ErrorCode,
			fmt.Sprintf("unsupported export format %q", format),
			format)
	}
}
