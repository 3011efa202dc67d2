// Package dataprocessing turns raw loan portfolio exports into normalized
// loan records ready for aggregation.
//
// # Architecture
//
// The package is organized into two components:
//
// 1. Parser: splits delimited text into rows of trimmed string fields,
// honoring quoted fields that may contain the delimiter or embedded quotes
// 2. Normalizer: maps header-indexed rows into typed LoanRecord values,
// coercing currency-formatted strings to clean numbers
//
// # Usage
//
// Basic parsing and normalization:
//
//	parser := dataprocessing.NewParser(logger)
//	rows := parser.Parse(rawText)
//
//	normalizer := dataprocessing.NewNormalizer(logger, dataprocessing.NormalizerConfig{})
//	records := normalizer.NormalizeAll(rows)
//
// # Error Handling
//
// The pipeline feeds a best-effort analytics view, not a validating import:
// it never returns an error for bad data. Malformed quoting degrades to a
// literal interpretation, unparsable numeric cells coerce to zero, and
// missing status values fall back to documented defaults. The only policy
// choice is NormalizerConfig.StrictSchema, which rejects the whole input
// when any expected column is absent from the header.
package dataprocessing
