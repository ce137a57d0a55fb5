package report

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbonlens/reporting-backend/internal/analytics"
)

// Handler handles HTTP requests for certified report generation
type Handler struct {
	service *Service
	fetcher *analytics.Client
	logger  *zap.Logger
}

// NewHandler creates a new report handler. fetcher may be nil when no
// upstream analytics service is configured; the fetch endpoint then replies
// 503.
func NewHandler(service *Service, fetcher *analytics.Client, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		fetcher: fetcher,
		logger:  logger,
	}
}

// RegisterRoutes registers report routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.POST("/certified", h.generateCertified)
		reports.GET("/certified/:campaignId", h.generateFromUpstream)
	}
}

// generateCertified handles POST /api/v1/reports/certified
func (h *Handler) generateCertified(c *gin.Context) {
	var in analytics.ReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.deliver(c, &in)
}

// generateFromUpstream handles GET /api/v1/reports/certified/:campaignId,
// pulling the analytics object from the upstream service before running the
// same pipeline.
func (h *Handler) generateFromUpstream(c *gin.Context) {
	if h.fetcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upstream analytics not configured"})
		return
	}

	campaignID := c.Param("campaignId")
	in, err := h.fetcher.FetchReportInput(c.Request.Context(), campaignID, c.Query("start"), c.Query("end"))
	if err != nil {
		h.logger.Error("Failed to fetch upstream analytics",
			zap.String("campaign_id", campaignID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream analytics unavailable"})
		return
	}

	h.deliver(c, in)
}

// deliver runs the pipeline and writes either the binary artifact or a
// structured error. Engine failures are logged in full but surfaced with a
// generic message only.
func (h *Handler) deliver(c *gin.Context, in *analytics.ReportInput) {
	artifact, err := h.service.GenerateCertified(c.Request.Context(), in)
	if err != nil {
		var verr *analytics.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		h.logger.Error("Failed to generate certified report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
