// Package exporter serializes ProcessedAnalytics for downstream
// consumers.
//
// Three components cover the supported formats:
//
// CSVWriter: core CSV writing with headers, streaming, and a UTF-8 BOM
// for Excel compatibility.
//
// ReportExporter: flattens a ProcessedAnalytics value into one CSV file
// per section (KPIs, segments, roll rates, growth projection, loans) and
// a single JSON document with metadata.
//
// ExcelExporter: writes one workbook with a sheet per section via
// excelize.
//
// Every field of ProcessedAnalytics round-trips losslessly through the
// JSON export; the CSV and Excel exports carry the same values formatted
// for spreadsheet use.
package exporter
