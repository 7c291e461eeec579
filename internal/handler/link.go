package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"redirector/internal/model"
	"redirector/internal/service"
	"redirector/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PasswordHeader carries the password of a protected link
const PasswordHeader = "X-Link-Password"

// LinkHandler serves the public link view and the link admin API
type LinkHandler struct {
	links      service.LinkServiceInterface
	recorder   service.ClickRecorderInterface
	geo        service.GeoResolverInterface
	baseURL    string
	edgeHeader string
}

// NewLinkHandler creates a new LinkHandler
func NewLinkHandler(
	links service.LinkServiceInterface,
	recorder service.ClickRecorderInterface,
	geo service.GeoResolverInterface,
	baseURL string,
	edgeHeader string,
) *LinkHandler {
	return &LinkHandler{
		links:      links,
		recorder:   recorder,
		geo:        geo,
		baseURL:    baseURL,
		edgeHeader: edgeHeader,
	}
}

// Visit handles GET /link/:code
// @Summary Open a link
// @Description Redirects DIRECT links and returns the interstitial data for the others
// @Tags link
// @Param code path string true "Link code"
// @Param password query string false "Password of a protected link"
// @Success 200 {object} Response{data=model.LinkView}
// @Success 302
// @Router /link/{code} [get]
func (h *LinkHandler) Visit(c *gin.Context) {
	link, ok := h.resolveUnlocked(c)
	if !ok {
		return
	}

	if link.RedirectType == model.RedirectDirect {
		if !util.IsBot(c.Request.UserAgent()) {
			h.recordAsync(c, link)
		}
		c.Redirect(http.StatusFound, link.TargetURL)
		return
	}

	success(c, http.StatusOK, h.view(link, true))
}

// Get handles GET /api/v1/links/:code
// @Summary Get a link
// @Tags link
// @Param code path string true "Link code"
// @Success 200 {object} Response{data=model.LinkView}
// @Router /api/v1/links/{code} [get]
func (h *LinkHandler) Get(c *gin.Context) {
	link, ok := h.resolveUnlocked(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, h.view(link, true))
}

// Create handles POST /api/v1/links
// @Summary Create a link
// @Tags link
// @Accept json
// @Produce json
// @Param X-API-Key header string true "API key"
// @Param request body model.CreateLinkRequest true "Link"
// @Success 201 {object} Response{data=model.LinkView}
// @Router /api/v1/links [post]
func (h *LinkHandler) Create(c *gin.Context) {
	var req model.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	link, err := h.links.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create link")
		return
	}

	log.Info().Str("code", link.Code).Str("app", c.GetString(ContextAppName)).Msg("Link created")
	success(c, http.StatusCreated, h.view(link, false))
}

// List handles GET /api/v1/links
// @Summary List active links
// @Tags link
// @Param X-API-Key header string true "API key"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param source query string false "Source"
// @Param sourceApp query string false "Source application"
// @Param search query string false "Search in code, title and target"
// @Param orderBy query string false "clicks, createdAt or updatedAt"
// @Param order query string false "asc or desc"
// @Success 200 {object} Response{data=LinkPage}
// @Router /api/v1/links [get]
func (h *LinkHandler) List(c *gin.Context) {
	q := model.LinkQuery{
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 20),
		Source:    model.LinkSource(c.Query("source")),
		SourceApp: c.Query("sourceApp"),
		Search:    c.Query("search"),
		OrderBy:   c.DefaultQuery("orderBy", "createdAt"),
		Order:     c.DefaultQuery("order", "desc"),
	}

	links, total, err := h.links.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to list links")
		return
	}

	q = service.NormalizeQuery(q)

	views := make([]model.LinkView, 0, len(links))
	for i := range links {
		views = append(views, h.view(&links[i], false))
	}

	success(c, http.StatusOK, LinkPage{
		Links: views,
		Pagination: Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
		},
	})
}

// Update handles PATCH /api/v1/links/:code
// @Summary Update a link
// @Tags link
// @Accept json
// @Param X-API-Key header string true "API key"
// @Param code path string true "Link code"
// @Param request body model.UpdateLinkRequest true "Changed fields"
// @Success 200 {object} Response{data=model.LinkView}
// @Router /api/v1/links/{code} [patch]
func (h *LinkHandler) Update(c *gin.Context) {
	var req model.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	link, err := h.links.Update(c.Request.Context(), c.Param("code"), &req)
	if err != nil {
		respondError(c, err, "Failed to update link")
		return
	}

	success(c, http.StatusOK, h.view(link, false))
}

// Deactivate handles DELETE /api/v1/links/:code
// @Summary Deactivate a link
// @Tags link
// @Param X-API-Key header string true "API key"
// @Param code path string true "Link code"
// @Success 200 {object} Response
// @Router /api/v1/links/{code} [delete]
func (h *LinkHandler) Deactivate(c *gin.Context) {
	code := c.Param("code")
	if err := h.links.Deactivate(c.Request.Context(), code); err != nil {
		respondError(c, err, "Failed to deactivate link")
		return
	}

	log.Info().Str("code", code).Str("app", c.GetString(ContextAppName)).Msg("Link deactivated")
	c.JSON(http.StatusOK, Response{Code: 0, Message: "Link deactivated"})
}

// Stats handles GET /api/v1/links/:code/stats
// @Summary Get link statistics
// @Tags analytics
// @Param code path string true "Link code"
// @Success 200 {object} Response{data=model.LinkStats}
// @Router /api/v1/links/{code}/stats [get]
func (h *LinkHandler) Stats(c *gin.Context) {
	stats, err := h.links.GetStats(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to get stats")
		return
	}
	success(c, http.StatusOK, stats)
}

// GlobalStats handles GET /api/v1/stats
// @Summary Get global statistics
// @Tags analytics
// @Param X-API-Key header string true "API key"
// @Success 200 {object} Response{data=model.GlobalStats}
// @Router /api/v1/stats [get]
func (h *LinkHandler) GlobalStats(c *gin.Context) {
	stats, err := h.links.GlobalStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get global stats")
		return
	}
	success(c, http.StatusOK, stats)
}

// LinkPage is one page of the link listing
type LinkPage struct {
	Links      []model.LinkView `json:"links"`
	Pagination Pagination       `json:"pagination"`
}

// Pagination describes the position of a page
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// resolveUnlocked resolves the code in the path and enforces the link's
// password. It writes the error response itself.
func (h *LinkHandler) resolveUnlocked(c *gin.Context) (*model.Link, bool) {
	link, err := h.links.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to fetch link")
		return nil, false
	}

	if link.Protected() {
		password := c.GetHeader(PasswordHeader)
		if password == "" {
			password = c.Query("password")
		}
		if password == "" {
			fail(c, http.StatusUnauthorized, "Password required")
			return nil, false
		}
		if !link.CheckPassword(password) {
			fail(c, http.StatusForbidden, "Invalid password")
			return nil, false
		}
	}

	return link, true
}

func (h *LinkHandler) view(link *model.Link, withTracking bool) model.LinkView {
	v := model.LinkView{
		Link:        link,
		ShortURL:    h.baseURL + "/link/" + link.Code,
		HasPassword: link.Protected(),
	}
	if withTracking {
		v.Tracking = &model.TrackingData{
			TrackingID: util.GenerateUUID(),
			Timestamp:  time.Now().UnixMilli(),
			LinkCode:   link.Code,
			LinkID:     link.ID,
		}
	}
	return v
}

// recordAsync records a click without holding up the redirect
func (h *LinkHandler) recordAsync(c *gin.Context, link *model.Link) {
	cc := c.Copy()
	ctx := context.WithoutCancel(c.Request.Context())

	go func() {
		in := clickInput(ctx, cc, h.geo, h.edgeHeader)
		res := h.recorder.Record(ctx, link.ID, link.Code, in)
		if len(res.Failures) > 0 {
			log.Debug().Str("code", link.Code).Int("failures", len(res.Failures)).Msg("Redirect click recorded with failures")
		}
	}()
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
