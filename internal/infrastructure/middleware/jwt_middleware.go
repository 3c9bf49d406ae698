package middleware

import (
	"net/http"
	"strings"

	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// CtxUserIdKey is the gin context key holding the authenticated user uuid.
const CtxUserIdKey = "user_id"

// JWTAuth validates the Bearer access token and stores the user id in
// the request context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "authentication required",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "malformed authorization header, expected Bearer token",
			})
			return
		}

		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "token expired or invalid",
			})
			return
		}
		if claims.Subject != "access_token" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "an access token is required here",
			})
			return
		}

		c.Set(CtxUserIdKey, claims.UserID)
		c.Next()
	}
}
