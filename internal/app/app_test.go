package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The application is built once; the telemetry providers register
// global collectors that cannot be registered twice per process.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("LOANPULSE_PATHS_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("LOANPULSE_PATHS_REPORTS_DIR", filepath.Join(dir, "reports"))
	t.Setenv("LOANPULSE_PATHS_LOGS_DIR", filepath.Join(dir, "logs"))
	t.Setenv("LOANPULSE_LOGGING_OUTPUT", "console")

	app, err := NewApplication()
	require.NoError(t, err)
	return app
}

func TestApplication_Routes(t *testing.T) {
	app := newTestApplication(t)

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("analyze inline", func(t *testing.T) {
		body := `{"csv":"loan_amount,appraised_value,borrower_income,monthly_debt,loan_status,interest_rate,principal_balance,dpd_status\n120000,200000,85000,2000,current,5.2,115000,current"}`
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/inline", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"loan_count":1`)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("log file anchored to logs dir", func(t *testing.T) {
		assert.Equal(t, app.Paths.GetLogPath("app.log"), app.Config.Logging.FilePath)
	})

	t.Run("unknown route is a problem response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "/errors/not-found")
	})
}
