package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/domain"
)

type categoryRequest struct {
	Name string `json:"name"`
}

var errCategoryNotFound = domain.NotFound("category not found")

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context(), principal(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = categoryToResponse(categories[i])
	}
	c.JSON(http.StatusOK, gin.H{"categories": resp})
}

func (h *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errBadBody)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), principal(c), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": categoryToResponse(*category)})
}

func (h *Handler) updateCategory(c *gin.Context) {
	id, err := pathID(c, errCategoryNotFound)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errBadBody)
		return
	}

	category, err := h.categories.Rename(c.Request.Context(), principal(c), id, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": categoryToResponse(*category)})
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, err := pathID(c, errCategoryNotFound)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.categories.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
