package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetplanner/internal/api"
	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/middleware"
	"budgetplanner/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService services.UserServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Login authenticates a user and issues a bearer token
// @Summary     Log in
// @Description Exchange a login and password for a bearer token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.LoginRequestDTO true "Credentials"
// @Success     200 {object} api.LoginResponseDTO "Token and user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/Login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequestDTO
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.AttemptLogin(req.Login, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	u := userDTO(user)
	c.JSON(http.StatusOK, api.LoginResponseDTO{
		Token:        token,
		ID:           u.ID,
		Name:         u.Name,
		Surname:      u.Surname,
		Login:        u.Login,
		UserRoleID:   u.UserRoleID,
		CreationDate: u.CreationDate,
		User:         &u,
	})
}
