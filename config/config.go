package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if one is present.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// GetEnv returns the value of key or defaultValue when it is unset or empty.
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvBool(key string) bool {
	return strings.EqualFold(os.Getenv(key), "true")
}
