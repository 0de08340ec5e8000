package utils

import (
	"fmt"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the gin context key under which the auth middleware stores the caller.
const UserIDKey = "user_id"

// GetUserIDFromContext extracts the caller's user ID set by the auth middleware.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(UserIDKey)
	if !exists {
		logger.ErrorLogger.Error("User ID not found in context.")
		return uuid.Nil, ErrUserIDNotFound
	}

	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		userID, err := uuid.Parse(v)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to parse user ID string '%s' to UUID: %v", v, err)
			return uuid.Nil, fmt.Errorf("invalid user ID format: %w", err)
		}
		return userID, nil
	default:
		logger.ErrorLogger.Errorf("User ID in context has unexpected type %T", raw)
		return uuid.Nil, fmt.Errorf("invalid user ID type in context: %T", raw)
	}
}
