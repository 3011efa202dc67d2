// Package analytics derives portfolio-health analytics from normalized
// loan records.
//
// Four aggregations feed a single ProcessedAnalytics output:
//
// 1. KPIs: delinquency rate, balance-weighted portfolio yield, average
// loan-to-value, average debt-to-income, loan count
// 2. Segments: principal balance grouped by loan status for a
// treemap-style proportional breakdown
// 3. Roll rates: delinquency-bucket to current-status transition
// percentages
// 4. Growth projection: a six-point synthetic forward series seeded from
// the computed yield and loan count
//
// Every function is a pure transformation of its input slice: local
// accumulator maps only, no shared state, a fresh result on every call.
// Concurrent invocations are safe without locking. Empty input is not an
// error; each aggregation degrades to its documented zero-value output.
package analytics
