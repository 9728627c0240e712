package middleware

import (
	"net/http"
	"strings"

	"github.com/blues/dfs/internal/config"
	"github.com/blues/dfs/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// gin上下文键
const (
	ContextUserId = "user_id"
	ContextRole   = "user_role"
)

// Authenticate 解析Bearer令牌并注入用户身份
func Authenticate(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "缺少认证令牌",
			})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &logic.Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "认证令牌无效或已过期",
			})
			return
		}

		c.Set(ContextUserId, claims.UserId)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole 角色门禁，必须在Authenticate之后使用
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "无权访问该接口",
			})
			return
		}
		c.Next()
	}
}

// UserId 从上下文取当前用户ID
func UserId(c *gin.Context) int64 {
	return c.GetInt64(ContextUserId)
}
