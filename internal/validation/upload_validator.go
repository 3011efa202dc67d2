// Package validation performs the pre-transform checks on uploaded
// portfolio exports: size caps, format checks, and header presence. The
// analytics transform itself never rejects data; every user-facing
// warning about a bad upload originates here.
package validation

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"loanpulse/internal/dataprocessing"
	"loanpulse/internal/errors"
)

// DefaultMaxUploadBytes caps uploads at 10 MiB, matching the in-browser,
// human-scale-file assumption of the surrounding system.
const DefaultMaxUploadBytes = 10 * 1024 * 1024

// allowedExtensions are the upload file extensions accepted as delimited text.
var allowedExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// UploadValidator validates portfolio uploads before analysis.
type UploadValidator struct {
	logger   *slog.Logger
	maxBytes int64
}

// NewUploadValidator creates a validator with the given size cap.
// A non-positive cap falls back to the default.
func NewUploadValidator(logger *slog.Logger, maxBytes int64) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadValidator{
		logger:   logger.With(slog.String("component", "upload_validator")),
		maxBytes: maxBytes,
	}
}

// MaxBytes returns the configured size cap.
func (v *UploadValidator) MaxBytes() int64 {
	return v.maxBytes
}

// ValidateSize checks the upload against the configured size cap.
func (v *UploadValidator) ValidateSize(size int64) error {
	if size > v.maxBytes {
		v.logger.Warn("upload rejected, too large",
			slog.Int64("size", size),
			slog.Int64("max_size", v.maxBytes))
		return errors.PayloadTooLargeError(size, v.maxBytes)
	}
	return nil
}

// ValidateFilename checks that the upload looks like a delimited text file.
// An empty filename is accepted; raw request bodies carry no name.
func (v *UploadValidator) ValidateFilename(filename string) error {
	if filename == "" {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		v.logger.Warn("upload rejected, unsupported extension",
			slog.String("filename", filename),
			slog.String("extension", ext))
		return errors.NewWithDetails(errors.ErrUnsupportedMedia.StatusCode,
			errors.ErrUnsupportedMedia.ErrorCode,
			fmt.Sprintf("unsupported upload extension %q, expected .csv or .txt", ext),
			filename)
	}
	return nil
}

// MissingColumns reports which expected portfolio columns are absent
// from the header row. Matching is case-insensitive.
func MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.ToLower(strings.TrimSpace(name))] = true
	}

	var missing []string
	for _, required := range dataprocessing.ExpectedColumns {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	return missing
}

// ValidateHeader checks that all expected columns are present in the
// first parsed row, producing the "missing required columns" warning the
// UI surfaces before the transform runs.
func (v *UploadValidator) ValidateHeader(rows [][]string) error {
	if len(rows) == 0 {
		// Nothing to check; the transform degrades to empty-portfolio defaults.
		return nil
	}
	if missing := MissingColumns(rows[0]); len(missing) > 0 {
		v.logger.Warn("upload header missing columns",
			slog.Any("missing", missing))
		return errors.MissingColumnsError(missing)
	}
	return nil
}
