package handler

import (
	"context"
	"net/http"

	"redirector/internal/model"
	"redirector/internal/service"

	"github.com/gin-gonic/gin"
)

// TrackHandler records the clicks reported by the interstitial page
type TrackHandler struct {
	links      service.LinkServiceInterface
	recorder   service.ClickRecorderInterface
	geo        service.GeoResolverInterface
	edgeHeader string
}

// NewTrackHandler creates a new TrackHandler
func NewTrackHandler(
	links service.LinkServiceInterface,
	recorder service.ClickRecorderInterface,
	geo service.GeoResolverInterface,
	edgeHeader string,
) *TrackHandler {
	return &TrackHandler{
		links:      links,
		recorder:   recorder,
		geo:        geo,
		edgeHeader: edgeHeader,
	}
}

// TrackResult is returned to the tracking client
type TrackResult struct {
	Unique bool `json:"unique"`
}

// Track handles POST /api/v1/analytics/track
// @Summary Record a click
// @Tags analytics
// @Accept json
// @Param request body model.TrackRequest true "Tracking call"
// @Success 200 {object} Response{data=TrackResult}
// @Router /api/v1/analytics/track [post]
func (h *TrackHandler) Track(c *gin.Context) {
	var req model.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "linkCode is required")
		return
	}

	link, err := h.links.Resolve(c.Request.Context(), req.LinkCode)
	if err != nil {
		respondError(c, err, "Failed to track click")
		return
	}

	// The visitor may leave before recording completes
	ctx := context.WithoutCancel(c.Request.Context())

	in := clickInput(ctx, c, h.geo, h.edgeHeader)
	in.WaitedFull = req.WaitedFull
	in.ClickedButton = req.ClickedButton
	in.TimeOnPage = req.TimeOnPage

	res := h.recorder.Record(ctx, link.ID, link.Code, in)

	success(c, http.StatusOK, TrackResult{Unique: res.Unique})
}
