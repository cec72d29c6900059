package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/logger"
	"budgetplanner/internal/validator"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (int64, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	id, ok := userID.(int64)
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID parses a positive integer path parameter.
func parsePathID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// requireSelf rejects requests addressing another user's resources.
func requireSelf(c *gin.Context, userID int64) error {
	current, err := getUserID(c)
	if err != nil {
		return err
	}
	if current != userID {
		return apperrors.ErrForbidden
	}
	return nil
}

// bindJSON decodes the body into obj. Rule violations become a validation
// error with one message per field.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}
	if fields := validator.BindingFields(err, apperrors.NormalizeField); len(fields) > 0 {
		return apperrors.WithFields(apperrors.ErrValidation, fields)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed request body")
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, message and field messages.
// Otherwise it logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
