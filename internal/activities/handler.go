package activities

import (
	"github.com/gin-gonic/gin"

	"github.com/geo-directory/backend/internal/pagination"
	"github.com/geo-directory/backend/pkg/response"
)

// Handler handles activity HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates an activities handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type listQuery struct {
	pagination.Params
	MaxDepth int `form:"max_depth,default=3" binding:"min=1,max=3"`
}

type treeQuery struct {
	MaxDepth int `form:"max_depth,default=3" binding:"min=1,max=3"`
}

// List handles GET /activities.
func (h *Handler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	page, err := h.svc.List(c.Request.Context(), q.Params, q.MaxDepth)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Tree handles GET /activities/tree.
func (h *Handler) Tree(c *gin.Context) {
	var q treeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	tree, err := h.svc.Tree(c.Request.Context(), q.MaxDepth)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tree)
}
