package middleware

import (
	"net/http"
	"strings"

	"chatspace/backend/common"
	"chatspace/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token and stores the caller's identity in the
// context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header format must be Bearer {token}",
			})
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		if common.RedisEnabled {
			blacklisted, _ := common.RDB.Exists(c, "jwt:blacklist:"+tokenString).Result()
			if blacklisted > 0 {
				c.JSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"message": "Token has been invalidated",
				})
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// SessionAuth accepts a logged-in session as an alternative to a bearer
// token; requests carrying an Authorization header go through JWTAuth
// semantics instead.
func SessionAuth() gin.HandlerFunc {
	jwtAuth := JWTAuth()
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			jwtAuth(c)
			return
		}

		session := sessions.Default(c)
		id := session.Get("id")
		username := session.Get("username")
		role := session.Get("role")
		status := session.Get("status")
		if id == nil || username == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not logged in",
			})
			c.Abort()
			return
		}
		if statusInt, ok := status.(int); ok && statusInt == common.UserStatusDisabled {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "User has been disabled",
			})
			c.Abort()
			return
		}

		c.Set("user_id", id)
		c.Set("username", username)
		c.Set("role", role)
		c.Next()
	}
}

// AdminAuth verifies the caller has the admin role. It assumes JWTAuth or
// SessionAuth already ran.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Role information not found",
			})
			c.Abort()
			return
		}

		roleInt, ok := role.(int)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Invalid role format",
			})
			c.Abort()
			return
		}

		if roleInt < common.RoleAdminUser {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin privileges required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RootAuth verifies the caller has the root role. It assumes JWTAuth or
// SessionAuth already ran.
func RootAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Role information not found",
			})
			c.Abort()
			return
		}

		roleInt, ok := role.(int)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Invalid role format",
			})
			c.Abort()
			return
		}

		if roleInt < common.RoleRootUser {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Root privileges required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
