package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/Irina-Gavrilina/shareit/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SharerUserIDHeader carries the caller's user id when no bearer token is sent.
const SharerUserIDHeader = "X-Sharer-User-Id"

// AuthMiddleware resolves the caller identity and stores it under utils.UserIDKey.
// A bearer token wins over the header. The user's existence is checked by the
// services, not here.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			raw string
			err error
		)

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			raw, err = userIDFromBearer(authHeader)
			if err != nil {
				logger.WarnLogger.Warnf("Rejected bearer token: %v", err)
				abortUnauthorized(c, "Invalid token")
				return
			}
		} else {
			raw = strings.TrimSpace(c.GetHeader(SharerUserIDHeader))
			if raw == "" {
				abortUnauthorized(c, "Missing user identification")
				return
			}
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			logger.WarnLogger.Warnf("Caller id %q is not a UUID", raw)
			abortUnauthorized(c, "Invalid user identification")
			return
		}

		c.Set(utils.UserIDKey, userID)
		c.Next()
	}
}

func userIDFromBearer(authHeader string) (string, error) {
	if len(authHeader) <= 7 || !strings.EqualFold(authHeader[:7], "bearer ") {
		return "", fmt.Errorf("invalid authorization format")
	}

	token, err := jwt.Parse(authHeader[7:], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return utils.GetJWTSecret(), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID, nil
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	return "", fmt.Errorf("no user identifier found in token")
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + msg})
}
