package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blues/dfs/internal/config"
	"github.com/blues/dfs/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, userId int64, role string) string {
	t.Helper()

	claims := logic.Claims{
		UserId: userId,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter(secret, requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := config.JWTConfig{Secret: secret}

	group := r.Group("/protected", Authenticate(cfg), RequireRole(requiredRole))
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": UserId(c)})
	})
	return r
}

func TestAuthenticateValidToken(t *testing.T) {
	r := newAuthRouter("secret", "admin")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", 42, "admin"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":42`)
}

func TestAuthenticateMissingToken(t *testing.T) {
	r := newAuthRouter("secret", "admin")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadSignature(t *testing.T) {
	r := newAuthRouter("secret", "admin")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", 42, "admin"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleMismatch(t *testing.T) {
	r := newAuthRouter("secret", "admin")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", 42, "donor"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
