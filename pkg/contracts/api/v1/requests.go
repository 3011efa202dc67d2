// Package v1 defines the request and response contracts of the HTTP API.
package v1

// AnalyzeInlineRequest carries delimited portfolio text inline in a JSON
// body, as an alternative to a multipart file upload.
type AnalyzeInlineRequest struct {
	CSV          string `json:"csv" validate:"required"`
	StrictSchema bool   `json:"strictSchema"`
}

// ExportRequest asks for the analysis of inline portfolio text to be
// written as a report in one of the supported formats.
type ExportRequest struct {
	CSV          string `json:"csv" validate:"required"`
	Format       string `json:"format" validate:"required,oneof=csv json xlsx"`
	StrictSchema bool   `json:"strictSchema"`
}

// ExportFormats lists the formats ExportRequest accepts.
var ExportFormats = []string{"csv", "json", "xlsx"}

// ExportResponse reports the files written by an export.
type ExportResponse struct {
	Format string   `json:"format"`
	Paths  []string `json:"paths"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
