package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nclx/gymnotetaker/internal/metrics"
	"nclx/gymnotetaker/internal/service"
)

type ExportHandler struct {
	export  service.ExportService
	metrics *metrics.Manager
}

func NewExportHandler(export service.ExportService, m *metrics.Manager) *ExportHandler {
	return &ExportHandler{export: export, metrics: m}
}

type ExportResponse struct {
	URL string `json:"url"`
}

// Export godoc
// @Summary Export the caller's full history as JSON
// @Tags Export
// @Produce json
// @Success 200 {object} ExportResponse "Presigned download URL"
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	url, err := h.export.Export(c.Request.Context(), accountID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	h.metrics.CounterExports.Inc()
	c.JSON(http.StatusOK, ExportResponse{URL: url})
}

// ListExports godoc
// @Summary List the caller's previous exports, newest first
// @Tags Export
// @Produce json
// @Success 200 {array} domain.Export
// @Router /exports [get]
func (h *ExportHandler) ListExports(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	exports, err := h.export.ListExports(c.Request.Context(), accountID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exports)
}
