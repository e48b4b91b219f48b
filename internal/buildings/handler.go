package buildings

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/geo-directory/backend/internal/pagination"
	"github.com/geo-directory/backend/pkg/response"
)

// Handler handles building HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a buildings handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /buildings.
func (h *Handler) List(c *gin.Context) {
	var p pagination.Params
	if err := c.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	page, err := h.svc.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Organizations handles GET /buildings/:building_id/organizations.
func (h *Handler) Organizations(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("building_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid building id")
		return
	}
	var p pagination.Params
	if err := c.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	page, err := h.svc.Organizations(c.Request.Context(), id, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}
