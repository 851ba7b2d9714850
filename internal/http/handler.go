package http

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"baking-dashboard/internal/config"
	"baking-dashboard/internal/http/middleware"
	"baking-dashboard/internal/model"
	"baking-dashboard/internal/service"
)

const (
	downloadPath     = "/download/baking-report"
	dashboardTmpl    = "dashboard.html"
	queryPage        = "page"
	queryStartDate   = "start_date"
	queryEndDate     = "end_date"
	msgInternalError = "internal error"
)

type Handler struct {
	bakingService *service.BakingService
	reportService *service.ReportService
	logoURL       string
	now           func() time.Time
	log           zerolog.Logger
}

func NewHandler(
	bakingService *service.BakingService,
	reportService *service.ReportService,
	logoURL string,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		bakingService: bakingService,
		reportService: reportService,
		logoURL:       logoURL,
		now:           time.Now,
		log:           log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.GET("/", h.dashboard)
	r.GET(downloadPath, h.downloadReport)

	api := r.Group("/api")
	api.Use(authMiddleware)
	{
		api.GET("/baking/metrics", h.getBakingMetrics)
		api.GET("/dataset", h.getDataset)
	}
}

func (h *Handler) dashboard(c *gin.Context) {
	page := ParsePage(strings.TrimSpace(c.Query(queryPage)))
	view := newDashboardView(page, h.logoURL)

	if page != PageReportBaking {
		c.HTML(http.StatusOK, dashboardTmpl, view)
		return
	}

	view.Filter = h.filterView(c)

	dateRange, err := h.dateRange(c)
	if err != nil {
		view.Error = err.Error()
		c.HTML(http.StatusBadRequest, dashboardTmpl, view)
		return
	}

	metrics, err := h.bakingService.Report(c.Request.Context(), dateRange)
	if err != nil {
		status := http.StatusBadRequest
		view.Error = err.Error()
		if !errors.Is(err, service.ErrInvalidInput) {
			h.log.Error().Err(err).Str("request_id", middleware.RequestID(c)).Msg("baking report failed")
			status = http.StatusInternalServerError
			view.Error = msgInternalError
		}
		c.HTML(status, dashboardTmpl, view)
		return
	}

	view.Overview, view.Daily = bakingRows(metrics)
	c.HTML(http.StatusOK, dashboardTmpl, view)
}

func (h *Handler) getBakingMetrics(c *gin.Context) {
	dateRange, err := h.dateRange(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	metrics, err := h.bakingService.Report(c.Request.Context(), dateRange)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if claims, ok := middleware.Claims(c); ok {
		h.log.Debug().Str("subject", claims.Subject).Msg("metrics requested")
	}

	c.JSON(http.StatusOK, successResponse(metrics))
}

func (h *Handler) getDataset(c *gin.Context) {
	summary, err := h.bakingService.DatasetSummary(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) downloadReport(c *gin.Context) {
	file, err := h.reportService.Download(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename}))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// dateRange reads start_date/end_date, defaulting to the reference date and today.
func (h *Handler) dateRange(c *gin.Context) (model.DateRange, error) {
	r := h.bakingService.DefaultRange(h.now())

	if raw := strings.TrimSpace(c.Query(queryStartDate)); raw != "" {
		start, err := parseDate(raw)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("%w: start_date %q", service.ErrInvalidInput, raw)
		}
		r.Start = start
	}

	if raw := strings.TrimSpace(c.Query(queryEndDate)); raw != "" {
		end, err := parseDate(raw)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("%w: end_date %q", service.ErrInvalidInput, raw)
		}
		r.End = end
	}

	return r, nil
}

func (h *Handler) filterView(c *gin.Context) filterView {
	defaults := h.bakingService.DefaultRange(h.now())
	filter := filterView{
		StartDate: defaults.Start.Format(config.DateLayout),
		EndDate:   defaults.End.Format(config.DateLayout),
		MinDate:   h.bakingService.MinStartDate().Format(config.DateLayout),
	}
	if raw := strings.TrimSpace(c.Query(queryStartDate)); raw != "" {
		filter.StartDate = raw
	}
	if raw := strings.TrimSpace(c.Query(queryEndDate)); raw != "" {
		filter.EndDate = raw
	}
	return filter
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("request_id", middleware.RequestID(c)).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse(msgInternalError))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func parseDate(raw string) (time.Time, error) {
	layouts := []string{
		config.DateLayout,
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("invalid date format")
}
