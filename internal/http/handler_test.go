package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baking-dashboard/internal/auth"
	"baking-dashboard/internal/config"
	"baking-dashboard/internal/http/middleware"
	"baking-dashboard/internal/model"
	"baking-dashboard/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testDataset() *model.Dataset {
	label := "LD-55"
	return model.NewDataset([]model.ScanEvent{
		{Date: day(2024, 12, 12), Status: model.ScanStatusIn, PalletID: "P1", BoxID: "B1", Model: &label},
		{Date: day(2024, 12, 12), Status: model.ScanStatusOut, PalletID: "P1", BoxID: "B1", Model: &label},
		{Date: day(2024, 12, 13), Status: model.ScanStatusIn, PalletID: "P2", BoxID: "B2", Model: &label},
	}, true)
}

func newTestRouter(t *testing.T, authMiddleware gin.HandlerFunc) (*gin.Engine, string) {
	t.Helper()

	reportPath := filepath.Join(t.TempDir(), "12 Desember 2024.xlsx")
	require.NoError(t, os.WriteFile(reportPath, []byte("xlsx-bytes"), 0o600))

	bakingService := service.NewBakingService(testDataset(), config.BakingConfig{
		BatchSize:    20,
		Target:       25000,
		MinStartDate: *day(2024, 12, 12),
		ShipmentCode: "LDCWT",
	})
	reportService := service.NewReportService(reportPath, "baking_report.xlsx")

	handler := NewHandler(bakingService, reportService, "/assets/logo.jpg", zerolog.Nop())
	handler.now = func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) }

	if authMiddleware == nil {
		authMiddleware = middleware.NoAuth()
	}
	router := NewRouter(handler, authMiddleware, RouterOptions{
		Environment: "test",
		Registry:    prometheus.NewRegistry(),
		Logger:      zerolog.Nop(),
	})
	return router, reportPath
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetBakingMetrics(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := get(router, "/api/baking/metrics?start_date=2024-12-12&end_date=2024-12-12")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data model.BakingMetrics `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 20, body.Data.EnteringPanels)
	assert.Equal(t, 20, body.Data.ExitingPanels)
	assert.Equal(t, 1, body.Data.InPallets)
	assert.Equal(t, 1, body.Data.OutPallets)
	assert.Equal(t, 20, body.Data.OnProgress)
	assert.Equal(t, 20, body.Data.TotalBaked)
	assert.Equal(t, "LD-55", body.Data.Model)
}

func TestGetBakingMetrics_DefaultRange(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := get(router, "/api/baking/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data model.BakingMetrics `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 40, body.Data.EnteringPanels)
	assert.True(t, body.Data.Range.Start.Equal(*day(2024, 12, 12)))
	assert.True(t, body.Data.Range.End.Equal(*day(2025, 1, 15)))
}

func TestGetBakingMetrics_InvalidInput(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	tests := []struct {
		name   string
		target string
	}{
		{name: "malformed start", target: "/api/baking/metrics?start_date=12-12-2024"},
		{name: "malformed end", target: "/api/baking/metrics?end_date=tomorrow"},
		{name: "start before minimum", target: "/api/baking/metrics?start_date=2024-12-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(router, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid input")
		})
	}
}

func TestGetBakingMetrics_RequiresTokenWhenConfigured(t *testing.T) {
	router, _ := newTestRouter(t, middleware.Auth(auth.NewParser("s3cret")))

	rec := get(router, "/api/baking/metrics")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(router, "/")
	assert.Equal(t, http.StatusOK, rec.Code, "the dashboard page stays public")
}

func TestGetDataset(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := get(router, "/api/dataset")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data model.DatasetSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.Rows)
	assert.True(t, body.Data.HasModelColumn)
}

func TestDashboard_ReportBaking(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := get(router, "/?start_date=2024-12-12&end_date=2024-12-12")
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, "Baking Progress")
	assert.Contains(t, html, "Daily Progress")
	assert.Contains(t, html, "LD-55")
	assert.Contains(t, html, "LDCWT")
	assert.Contains(t, html, "25.000")
	assert.Contains(t, html, "0.08%")
	assert.Contains(t, html, `min="2024-12-12"`)
	assert.Contains(t, html, downloadPath)
	assert.Contains(t, html, "/assets/logo.jpg")
}

func TestDashboard_DefaultsToReportBaking(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := get(router, "/?page=unknown")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Baking Progress")
	assert.Contains(t, rec.Body.String(), `value="2025-01-15"`)
}

func TestDashboard_ReportSorting(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := get(router, "/?page=sorting")
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, "This is where you can implement the sorting functionality.")
	assert.NotContains(t, html, "Baking Progress")
	assert.NotContains(t, html, "Download Excel Report")
}

func TestDashboard_EmptyRangeRendersZeros(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := get(router, "/?start_date=2025-06-01&end_date=2025-06-30")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), model.NotAvailable)
}

func TestDashboard_InvalidRange(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := get(router, "/?start_date=2024-01-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start date must not be before 2024-12-12")
	assert.NotContains(t, rec.Body.String(), "Daily Progress")
}

func TestDownloadReport(t *testing.T) {
	router, reportPath := newTestRouter(t, nil)

	rec := get(router, downloadPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.SpreadsheetMIME, rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=baking_report.xlsx", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx-bytes", rec.Body.String())

	require.NoError(t, os.Remove(reportPath))
	rec = get(router, downloadPath)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthzAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	assert.Equal(t, http.StatusOK, get(router, "/healthz").Code)

	get(router, "/api/dataset")
	rec := get(router, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "baking_dashboard_http_requests_total")
}
