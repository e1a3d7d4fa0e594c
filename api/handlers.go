package api

import (
	"net/http"

	"storepulse/models"
	"storepulse/service"

	"github.com/gin-gonic/gin"
)

// Handler exposes the report lifecycle over HTTP
type Handler struct {
	reports service.ReportService
}

// NewHandler creates a new API handler
func NewHandler(reports service.ReportService) *Handler {
	return &Handler{reports: reports}
}

// triggerReport starts a report and returns its identifier immediately;
// computation continues in the background.
func (h *Handler) triggerReport(c *gin.Context) {
	reportID, err := h.reports.StartReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report_id": reportID})
}

// getReport polls a report by identifier
func (h *Handler) getReport(c *gin.Context) {
	reportID := c.Query("report_id")
	if reportID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report_id is required"})
		return
	}

	report, err := h.reports.GetReportStatus(c.Request.Context(), reportID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	switch report.Status {
	case models.ReportStatusComplete:
		var artifact string
		if report.ArtifactPath != nil {
			artifact = *report.ArtifactPath
		}
		c.JSON(http.StatusOK, gin.H{"status": "Complete", "report_url": artifact})
	case models.ReportStatusFailed:
		// Failure detail stays server side; callers re-trigger to retry
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "Running"})
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
