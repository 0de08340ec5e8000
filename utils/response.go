package utils

import (
	"errors"
	"net/http"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/gin-gonic/gin"
)

// InternalErrorMessage is the only text a client sees for unexpected failures.
const InternalErrorMessage = "Internal server error"

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnavailableBooking):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUserIDNotFound):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes {"error": msg}. Unexpected errors are logged and hidden.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorLogger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": InternalErrorMessage})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
