package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Excommunicode/ShareHub/internal/application"
	"github.com/Excommunicode/ShareHub/internal/platform/middleware"
	"github.com/Excommunicode/ShareHub/internal/platform/response"
)

// ItemHandler handles HTTP requests for items and their comments.
type ItemHandler struct {
	items    *application.ItemService
	comments *application.CommentService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items *application.ItemService, comments *application.CommentService) *ItemHandler {
	return &ItemHandler{items: items, comments: comments}
}

// RegisterRoutes registers all item routes.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	items.Use(middleware.RequireUserID())
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListOwnerItems)
		items.GET("/search", h.SearchItems)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.POST("/:id/comment", h.AddComment)
	}
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.items.CreateItem(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateItem handles PATCH /items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID, ok := parseID(c, "id", "item")
	if !ok {
		return
	}
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.items.UpdateItem(c.Request.Context(), ownerID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetItem handles GET /items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, ok := parseID(c, "id", "item")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.items.GetItem(c.Request.Context(), itemID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOwnerItems handles GET /items.
func (h *ItemHandler) ListOwnerItems(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, ok := parsePagination(c)
	if !ok {
		return
	}

	result, err := h.items.ListOwnerItems(c.Request.Context(), ownerID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, *result)
}

// SearchItems handles GET /items/search?text=.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	from, size, ok := parsePagination(c)
	if !ok {
		return
	}

	result, err := h.items.SearchItems(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, *result)
}

// AddComment handles POST /items/:id/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	itemID, ok := parseID(c, "id", "item")
	if !ok {
		return
	}
	authorID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.comments.AddComment(c.Request.Context(), authorID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
