// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/sokomarket/soko-backend/internal/i18n"
	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthInvalidToken),
			})
			c.Abort()
			return
		}

		token := parts[1]
		claims, err := utils.ValidateAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthTokenExpired),
			})
			c.Abort()
			return
		}

		// Set principal in context
		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateAccessToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RoleRequired permits callers whose role satisfies any of the given
// roles under the hierarchy; an admin passes every check.
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		roleStr, exists := utils.GetUserRoleFromContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		userRole := models.Role(roleStr)
		for _, required := range roles {
			if userRole == required || userRole.AtLeast(required) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":    i18n.T(lang, i18n.KeyAccessRoleTooLow),
			"required": roles,
			"current":  userRole,
		})
		c.Abort()
	}
}

// RoleOnly permits exact role matches with no hierarchy.
func RoleOnly(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		roleStr, exists := utils.GetUserRoleFromContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		userRole := models.Role(roleStr)
		for _, required := range roles {
			if userRole == required {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":    i18n.T(lang, i18n.KeyAccessDenied),
			"required": roles,
			"current":  userRole,
		})
		c.Abort()
	}
}

// RoleOrOwner permits privileged roles, or any caller whose subject id
// matches the named route parameter.
func RoleOrOwner(param string, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		userID, exists := utils.GetUserIDFromContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		if roleStr, ok := utils.GetUserRoleFromContext(c); ok {
			userRole := models.Role(roleStr)
			for _, required := range roles {
				if userRole == required {
					c.Next()
					return
				}
			}
		}

		if c.Param(param) == userID {
			c.Next()
			return
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error": i18n.T(lang, i18n.KeyAccessNotOwner),
		})
		c.Abort()
	}
}
