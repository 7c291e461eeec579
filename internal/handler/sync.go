package handler

import (
	"net/http"

	"redirector/internal/service"

	"github.com/gin-gonic/gin"
)

// SyncHandler exposes counter reconciliation
type SyncHandler struct {
	reconciler service.ReconcilerInterface
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(reconciler service.ReconcilerInterface) *SyncHandler {
	return &SyncHandler{reconciler: reconciler}
}

// Sync handles POST /api/v1/sync
// @Summary Reconcile click counters
// @Tags sync
// @Param X-API-Key header string true "API key"
// @Success 200 {object} Response{data=model.SyncResult}
// @Router /api/v1/sync [post]
func (h *SyncHandler) Sync(c *gin.Context) {
	result, err := h.reconciler.Sync(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to sync counters")
		return
	}
	success(c, http.StatusOK, result)
}

// Status handles GET /api/v1/sync
// @Summary Compare click counters
// @Tags sync
// @Param X-API-Key header string true "API key"
// @Success 200 {object} Response{data=model.SyncStatus}
// @Router /api/v1/sync [get]
func (h *SyncHandler) Status(c *gin.Context) {
	status, err := h.reconciler.Status(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to read sync status")
		return
	}
	success(c, http.StatusOK, status)
}
