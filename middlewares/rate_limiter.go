package middleware

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	redisclient "github.com/Irina-Gavrilina/shareit/config/redis"
	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/Irina-Gavrilina/shareit/middlewares/auth"
	"github.com/Irina-Gavrilina/shareit/utils"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// rateLimitKey identifies the caller: the authenticated user when known,
// then the identity header, then the client IP.
func rateLimitKey(c *gin.Context) string {
	if userID, err := utils.GetUserIDFromContext(c); err == nil {
		return "user:" + userID.String()
	}
	if header := c.GetHeader(auth.SharerUserIDHeader); header != "" {
		return "user:" + header
	}
	return "ip:" + c.ClientIP()
}

// createStore uses Redis when it is configured and reachable, memory otherwise.
func createStore(routeID string, period time.Duration) (limiter.Store, error) {
	options := limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: period,
	}

	rdb, err := redisclient.GetRedisClient(context.Background())
	if err != nil {
		return memorystore.NewStoreWithOptions(options), nil
	}

	store, err := redisstore.NewStoreWithOptions(rdb, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis store for route %s: %w", routeID, err)
	}
	return store, nil
}

// ParseCustomRate allows formats like "10-2m", "30-20m", "5-1h", "20-10s".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil || limit <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	durationStr := parts[1]
	var unit time.Duration
	switch {
	case strings.HasSuffix(durationStr, "s"):
		unit = time.Second
	case strings.HasSuffix(durationStr, "m"):
		unit = time.Minute
	case strings.HasSuffix(durationStr, "h"):
		unit = time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}

	n, err := strconv.Atoi(durationStr[:len(durationStr)-1])
	if err != nil || n <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid duration: %s", durationStr)
	}

	return limiter.Rate{
		Period: time.Duration(n) * unit,
		Limit:  int64(limit),
	}, nil
}

// NewRateLimiter limits each caller on routeID to rateStr, e.g. "10-2m".
// A bad rate or store leaves the route unlimited.
func NewRateLimiter(rateStr, routeID string) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Error parsing rate for route %s: %v", routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	store, err := createStore(routeID, rate.Period)
	if err != nil {
		logger.ErrorLogger.Errorf("Error creating rate limit store for route %s: %v", routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	return ginmiddleware.NewMiddleware(limiter.New(store, rate), ginmiddleware.WithKeyGetter(rateLimitKey))
}
