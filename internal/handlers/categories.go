package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"barriotips/api/internal/ids"
	"barriotips/api/internal/models"
	"barriotips/api/internal/repository"
)

type categoryRequest struct {
	CategoryName string `json:"categoryName"`
	CategoryIcon string `json:"categoryIcon"`
}

type categoryResponse struct {
	ID           string `json:"_id"`
	CategoryName string `json:"categoryName"`
	CategoryIcon string `json:"categoryIcon"`
}

func newCategoryResponse(category models.Category) categoryResponse {
	return categoryResponse{
		ID:           category.ID,
		CategoryName: category.CategoryName,
		CategoryIcon: category.CategoryIcon,
	}
}

func (h HandlerSet) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CategoryName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a category name."})
		return
	}

	category := models.Category{
		ID:           ids.New(),
		CategoryName: req.CategoryName,
		CategoryIcon: req.CategoryIcon,
	}
	if err := h.categories.Create(c.Request.Context(), category); err != nil {
		h.categoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCategoryResponse(category))
}

func (h HandlerSet) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.categoryError(c, err)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, newCategoryResponse(category))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetCategory(c *gin.Context) {
	category, err := h.categories.GetByID(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		h.categoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(category))
}

func (h HandlerSet) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{
		ID:           c.Param("categoryId"),
		CategoryName: req.CategoryName,
		CategoryIcon: req.CategoryIcon,
	}
	if err := h.categories.Update(c.Request.Context(), category); err != nil {
		h.categoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(category))
}

func (h HandlerSet) DeleteCategory(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("categoryId")); err != nil {
		h.categoryError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) categoryError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrCategoryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found."})
		return
	}
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("category operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
}
