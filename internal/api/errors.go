package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stevensfit/fitness-api/internal/apperror"
	"stevensfit/fitness-api/internal/logging"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, kind, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: kind, Message: message})
}

// respondError maps a service error onto its status code. Persistence and
// unknown errors are logged and reported without their cause.
func respondError(c *gin.Context, err error) {
	switch kind := apperror.Kind(err); {
	case errors.Is(kind, apperror.ErrInvalidArgument):
		abortWithError(c, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(kind, apperror.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(kind, apperror.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(kind, apperror.ErrConflict):
		abortWithError(c, http.StatusConflict, "conflict", err.Error())
	default:
		logging.FromContext(c.Request.Context()).Error("request failed", "error", err.Error())
		abortWithError(c, http.StatusInternalServerError, "internal_error", "Internal Server Error")
	}
}

// badRequest reports a body that could not be decoded at all.
func badRequest(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, "invalid_argument", "Invalid request body: "+err.Error())
}
