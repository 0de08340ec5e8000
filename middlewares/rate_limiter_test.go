package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomRate(t *testing.T) {
	tests := []struct {
		in     string
		limit  int64
		period time.Duration
	}{
		{"10-2m", 10, 2 * time.Minute},
		{"20-10s", 20, 10 * time.Second},
		{"5-1h", 5, time.Hour},
	}
	for _, tt := range tests {
		rate, err := ParseCustomRate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.limit, rate.Limit, tt.in)
		assert.Equal(t, tt.period, rate.Period, tt.in)
	}

	for _, bad := range []string{"", "10", "ten-1m", "10-1d", "10-m", "0-1m", "10-1m-2"} {
		_, err := ParseCustomRate(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewRateLimiterInMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("REDIS_URL", "")

	r := gin.New()
	r.GET("/limited", NewRateLimiter("2-1m", "test-limited"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.Header.Set("X-Sharer-User-Id", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("a"))
	assert.Equal(t, http.StatusOK, call("a"))
	assert.Equal(t, http.StatusTooManyRequests, call("a"))
	assert.Equal(t, http.StatusOK, call("b"))
}
