package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleAndDecode(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()

	h := NewErrorHandler(slog.Default(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/upload", nil)
	rec := httptest.NewRecorder()
	h.HandleError(rec, req, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleError_APIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "missing columns",
			err:        MissingColumnsError([]string{"loan_amount"}),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeMissingColumns,
		},
		{
			name:       "payload too large",
			err:        PayloadTooLargeError(20<<20, 10<<20),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantType:   TypePayloadTooLarge,
		},
		{
			name:       "unsupported media",
			err:        ErrUnsupportedMedia,
			wantStatus: http.StatusUnsupportedMediaType,
			wantType:   TypeUploadInvalid,
		},
		{
			name:       "validation",
			err:        ErrValidation("csv", "csv is required"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleAndDecode(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
		})
	}
}

func TestHandleError_AppError(t *testing.T) {
	status, body := handleAndDecode(t, NewExportError("failed to write Excel workbook", fmt.Errorf("disk full")))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, TypeExportFailed, body["type"])
	assert.Equal(t, "failed to write Excel workbook", body["detail"])
}

func TestHandleError_ContextCanceled(t *testing.T) {
	status, body := handleAndDecode(t, context.Canceled)

	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, TypeTimeout, body["type"])
}

func TestHandleError_UnknownError(t *testing.T) {
	status, body := handleAndDecode(t, fmt.Errorf("something odd"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, TypeInternal, body["type"])
}

func TestHandleError_DetailsExtension(t *testing.T) {
	_, body := handleAndDecode(t, MissingColumnsError([]string{"loan_amount", "dpd_status"}))

	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	assert.Len(t, details, 2)
	assert.Equal(t, "MISSING_COLUMNS", body["error_code"])
}

func TestNotFoundHandler(t *testing.T) {
	h := NewErrorHandler(slog.Default(), false)
	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), TypeNotFound)
	assert.Contains(t, rec.Body.String(), "/nope")
}

func TestMethodNotAllowedHandler(t *testing.T) {
	h := NewErrorHandler(slog.Default(), false)
	rec := httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "DELETE")
}

func TestAppError_TypeChecks(t *testing.T) {
	err := NewValidationError("bad header", nil)
	assert.True(t, IsType(err, ErrTypeValidation))
	assert.False(t, IsType(err, ErrTypeExport))

	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, IsType(wrapped, ErrTypeValidation))
}

func TestProblemDetails_MarshalIncludesExtensions(t *testing.T) {
	pd := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "detail", "/x").
		WithExtension("error_code", "VALIDATION_FAILED")

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
	assert.Equal(t, TypeValidation, body["type"])
}
