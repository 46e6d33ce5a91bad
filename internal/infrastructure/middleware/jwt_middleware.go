// Package middleware contains the gin middlewares shared by all routes.
package middleware

import (
	"net/http"
	"strings"

	"your_chores_server/pkg/errorx"
	"your_chores_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// JWTAuth verifies the Bearer access token and stores the user uuid in
// the gin context under "user_id".
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "Please log in first",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "Malformed Authorization header, use a Bearer token",
			})
			return
		}

		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "The token is expired or invalid, please log in again",
			})
			return
		}

		// refresh tokens must not pass as access tokens
		if claims.Subject != "access_token" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "An access token is required for this endpoint",
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
