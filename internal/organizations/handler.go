package organizations

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/geo-directory/backend/internal/pagination"
	"github.com/geo-directory/backend/pkg/response"
)

// Handler handles organization HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates an organizations handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type searchQuery struct {
	pagination.Params
	Name string `form:"name" binding:"required,min=1"`
}

type byActivityQuery struct {
	pagination.Params
	IncludeDescendants *bool `form:"include_descendants"`
}

type geoQuery struct {
	pagination.Params
	GeoParams
}

// Search handles GET /organizations?name=.
func (h *Handler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	page, err := h.svc.SearchByName(c.Request.Context(), q.Name, q.Params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// ByActivity handles GET /organizations/by-activity/:activity_id. Descendants are included unless
// include_descendants=false.
func (h *Handler) ByActivity(c *gin.Context) {
	id, ok := parseID(c, "activity_id")
	if !ok {
		return
	}
	var q byActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	include := q.IncludeDescendants == nil || *q.IncludeDescendants
	page, err := h.svc.ListByActivity(c.Request.Context(), id, include, q.Params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Geo handles GET /organizations/geo.
func (h *Handler) Geo(c *gin.Context) {
	var q geoQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	page, err := h.svc.GeoSearch(c.Request.Context(), q.GeoParams, q.Params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Card handles GET /organizations/:org_id.
func (h *Handler) Card(c *gin.Context) {
	id, ok := parseID(c, "org_id")
	if !ok {
		return
	}
	card, err := h.svc.GetCard(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, card)
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid "+param)
		return 0, false
	}
	return id, true
}
