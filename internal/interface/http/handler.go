package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/summary"
	"github.com/yanqian/weather-dashboard/internal/infra/config"
)

const dashboardTemplate = "dashboard.html.tmpl"

// Handler wires the HTTP transport to domain services.
type Handler struct {
	dashboardSvc dashboard.Service
	summarySvc   summary.Service
	cacheControl string
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg *config.Config, dashboardSvc dashboard.Service, summarySvc summary.Service, logger *slog.Logger) *Handler {
	return &Handler{
		dashboardSvc: dashboardSvc,
		summarySvc:   summarySvc,
		cacheControl: fmt.Sprintf("public, max-age=%d", int(cfg.Cache.TTL.Seconds())),
		logger:       logger.With("component", "http.handler"),
	}
}

// DashboardPage renders the HTML dashboard for /location/:city/:lat/:long.
func (h *Handler) DashboardPage(c *gin.Context) {
	d, err := h.dashboardSvc.Compose(c.Request.Context(), locationParams(c))
	if err != nil {
		abortWithError(c, fromAppError(err, "dashboard_failed"))
		return
	}
	c.Header("Cache-Control", h.cacheControl)
	c.HTML(http.StatusOK, dashboardTemplate, d)
}

// DashboardJSON returns the same view model the page renders.
func (h *Handler) DashboardJSON(c *gin.Context) {
	d, err := h.dashboardSvc.Compose(c.Request.Context(), locationParams(c))
	if err != nil {
		abortWithError(c, fromAppError(err, "dashboard_failed"))
		return
	}
	c.Header("Cache-Control", h.cacheControl)
	c.JSON(http.StatusOK, d)
}

// GetWeatherSummary generates the presenter-style summary for a normalized payload.
func (h *Handler) GetWeatherSummary(c *gin.Context) {
	var req summary.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.summarySvc.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err, "summary_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func locationParams(c *gin.Context) forecast.Location {
	return forecast.Location{
		City:      c.Param("city"),
		Latitude:  c.Param("lat"),
		Longitude: c.Param("long"),
	}
}
