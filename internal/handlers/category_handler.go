package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetplanner/internal/api"
	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/services"
)

// CategoryHandler handles category-related requests. Categories are shared by
// all users.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategories lists every category
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  api.CategoryDTO "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /api/TransactionCategory/AllCategories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapAll(categories, categoryDTO))
}

// GetCategoryByID returns one category
// @Summary     Get category
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Success     200 {object} api.CategoryDTO "Category"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /api/TransactionCategory/GetCategory/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryDTO(category))
}

// CreateCategory adds a category
// @Summary     Create category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body api.CategoryDTO true "Category details"
// @Success     201 {object} api.CategoryDTO "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /api/TransactionCategory/AddCategory [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req api.CategoryDTO
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(categoryInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, categoryDTO(category))
}

// UpdateCategory replaces a category's fields
// @Summary     Update category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body api.CategoryDTO true "Category details"
// @Success     200 {object} api.CategoryDTO "Category updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Type change while in use"
// @Router      /api/TransactionCategory/UpdateCategory [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req api.CategoryDTO
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.ID < 1 {
		respondWithError(c, apperrors.WithFields(apperrors.ErrValidation, map[string]string{"id": "is required"}))
		return
	}

	category, err := h.categoryService.UpdateCategory(req.ID, categoryInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryDTO(category))
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Tags        categories
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Category in use"
// @Router      /api/TransactionCategory/DeleteCategory/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
