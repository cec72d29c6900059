package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetplanner/internal/api"
	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/pagination"
	"budgetplanner/internal/services"
)

// UserHandler handles user-related requests
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser registers a new user. It is the only user route open without a token.
// @Summary     Register a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.UserWriteDTO true "User details"
// @Success     201 {object} api.UserDTO "User created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Login already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/Users/AddUser [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req api.UserWriteDTO
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.Password == "" {
		respondWithError(c, apperrors.WithFields(apperrors.ErrValidation, map[string]string{"password": "is required"}))
		return
	}

	user, err := h.userService.CreateUser(userInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userDTO(user))
}

// ListUsers returns one page of users. Without paging parameters the largest
// page is returned.
// @Summary     List users
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {array}  api.UserDTO "Users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/Users/AllUsers [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid paging parameters"))
		return
	}
	if page.PageSize == 0 {
		page.PageSize = pagination.MaxPageSize
	}
	page.Defaults()

	result, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapAll(result.Data, userDTO))
}

// GetUser returns the authenticated user's own record.
// @Summary     Get a user
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} api.UserDTO "User"
// @Failure     403 {object} ErrorResponse "Another user's record"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /api/Users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := requireSelf(c, id); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userDTO(user))
}

// UpdateUser replaces the authenticated user's profile. An empty password keeps
// the current one.
// @Summary     Update a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body api.UserWriteDTO true "User details"
// @Success     200 {object} api.UserDTO "User updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Another user's record"
// @Failure     409 {object} ErrorResponse "Login already taken"
// @Router      /api/Users/UpdateUser [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req api.UserWriteDTO
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.ID != 0 && req.ID != userID {
		respondWithError(c, apperrors.ErrForbidden)
		return
	}

	user, err := h.userService.UpdateUser(userID, userInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userDTO(user))
}

// DeleteUser removes the authenticated user.
// @Summary     Delete a user
// @Tags        users
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     204 "Deleted"
// @Failure     403 {object} ErrorResponse "Another user's record"
// @Router      /api/Users/DeleteUser/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := requireSelf(c, id); err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
