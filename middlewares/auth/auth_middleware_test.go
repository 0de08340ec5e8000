package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Irina-Gavrilina/shareit/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		id, err := utils.GetUserIDFromContext(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func call(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := newRouter()
	userID := uuid.New()

	t.Run("SharerHeader", func(t *testing.T) {
		w := call(r, map[string]string{SharerUserIDHeader: userID.String()})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("BearerUserIDClaim", func(t *testing.T) {
		token := sign(t, testSecret, jwt.MapClaims{"user_id": userID.String(), "exp": time.Now().Add(time.Hour).Unix()})
		w := call(r, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("BearerSubClaim", func(t *testing.T) {
		token := sign(t, testSecret, jwt.MapClaims{"sub": userID.String()})
		w := call(r, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("BearerWinsOverHeader", func(t *testing.T) {
		token := sign(t, testSecret, jwt.MapClaims{"sub": userID.String()})
		w := call(r, map[string]string{"Authorization": "Bearer " + token, SharerUserIDHeader: uuid.NewString()})
		assert.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token := sign(t, "other-secret", jwt.MapClaims{"sub": userID.String()})
		w := call(r, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token := sign(t, testSecret, jwt.MapClaims{"sub": userID.String(), "exp": time.Now().Add(-time.Hour).Unix()})
		w := call(r, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("NotBearer", func(t *testing.T) {
		w := call(r, map[string]string{"Authorization": "Basic abc"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing", func(t *testing.T) {
		w := call(r, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("HeaderNotUUID", func(t *testing.T) {
		w := call(r, map[string]string{SharerUserIDHeader: "42"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
