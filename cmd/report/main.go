package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"loanpulse/internal/infrastructure"
	"loanpulse/internal/services"
)

func main() {
	inputPath := flag.String("in", "", "portfolio export to analyze (CSV)")
	outputDir := flag.String("out", "data/reports", "output directory for reports")
	formats := flag.String("formats", "json", "comma-separated report formats: csv, json, xlsx")
	strict := flag.Bool("strict", false, "reject inputs whose header is missing expected columns")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: report -in portfolio.csv [-out dir] [-formats csv,json,xlsx] [-strict]")
		os.Exit(2)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger := infrastructure.WithComponent(infrastructure.LoggerWithContext(ctx), "report")

	file, err := os.Open(*inputPath)
	if err != nil {
		logger.Error("Failed to open input", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		logger.Error("Failed to stat input", "path", *inputPath, "error", err)
		os.Exit(1)
	}

	svc := services.NewAnalyticsService(logger, services.ServiceConfig{
		StrictSchema: *strict,
	}, nil)

	logger.Info("Analyzing portfolio", "path", *inputPath, "size", info.Size())

	result, err := svc.AnalyzeUpload(ctx, *inputPath, info.Size(), file)
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Analysis complete",
		"loans", result.KPIs.LoanCount,
		"delinquency_rate", result.KPIs.DelinquencyRate,
		"portfolio_yield", result.KPIs.PortfolioYield)

	formatList := strings.Split(*formats, ",")
	for i, f := range formatList {
		formatList[i] = strings.TrimSpace(strings.ToLower(f))
	}

	paths, err := svc.Export(ctx, *outputDir, result, formatList)
	if err != nil {
		logger.Error("Export failed", "error", err)
		os.Exit(1)
	}

	for format, written := range paths {
		for _, p := range written {
			logger.Info("Report written", "format", format, "path", p)
		}
	}
}
