package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gradboard/app/cfg"
)

// PullData triggers a blocking ingestion run for API callers. A run already
// in flight yields an immediate conflict instead of queueing.
func (h *Handler) PullData(c *gin.Context) {
	outcome := h.coordinator.TriggerSync(c.Request.Context())

	if outcome.Busy {
		c.JSON(http.StatusConflict, gin.H{
			"busy": true,
			"ok":   false,
		})
		return
	}

	if outcome.Err != nil {
		slog.Error("Ingestion run failed", "error", outcome.Err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"busy":  false,
			"ok":    false,
			"error": outcome.Err.Error(),
		})
		return
	}

	status := "updated"
	if outcome.Records == 0 {
		status = "no_new"
	}

	c.JSON(http.StatusOK, gin.H{
		"busy":    false,
		"ok":      true,
		"records": outcome.Records,
		"status":  status,
	})
}

// Pull triggers a background ingestion run for browser callers and sends
// them back to the status page. A busy rejection only queues a notice.
func (h *Handler) Pull(c *gin.Context) {
	h.coordinator.TriggerAsync(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

// GetAnalysis returns the status page data: running flag, one-shot pending
// message and error, and the stored record stats.
func (h *Handler) GetAnalysis(c *gin.Context) {
	message, errMessage := h.coordinator.Status()

	stats, err := h.repo.GetStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"running": h.coordinator.Running(),
		"message": message,
		"error":   errMessage,
		"stats": gin.H{
			"total_records":     stats.TotalRecords,
			"max_result_page":   stats.MaxResultPage,
			"latest_date_added": stats.LatestDateAdded,
		},
	})
}

// UpdateAnalysis refreshes the status page. Stats are recomputed on every
// read, so this only queues a busy notice when a run is mid-flight.
func (h *Handler) UpdateAnalysis(c *gin.Context) {
	if h.coordinator.Running() {
		h.coordinator.NotifyBusy()
	}
	c.Redirect(http.StatusSeeOther, "/analysis")
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"version":   cfg.GetVersion(),
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.repo.GetRecordCount(); err == nil {
		health["records"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_records":     stats.TotalRecords,
		"max_result_page":   stats.MaxResultPage,
		"latest_date_added": stats.LatestDateAdded,
		"running":           h.coordinator.Running(),
	})
}
