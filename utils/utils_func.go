package utils

import (
	"os"

	"github.com/Irina-Gavrilina/shareit/logger"
)

const defaultJWTSecret = "default-insecure-secret-only-for-development"

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.WarnLogger.Warn("JWT_SECRET environment variable not set.")
		return []byte(defaultJWTSecret)
	}
	return []byte(secret)
}
