package http

import (
	"context"
	"io"

	"loanpulse/pkg/contracts/domain"
)

// AnalyticsServiceInterface is the service surface the analytics
// handler depends on. Defined here so tests can substitute the service.
type AnalyticsServiceInterface interface {
	AnalyzeUpload(ctx context.Context, filename string, size int64, r io.Reader) (*domain.ProcessedAnalytics, error)
	AnalyzeWithMode(ctx context.Context, text string, strict bool) *domain.ProcessedAnalytics
	Export(ctx context.Context, dir string, result *domain.ProcessedAnalytics, formats []string) (map[string][]string, error)
}
