// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/loanpro-backend/internal/i18n"
	"github.com/javajoker/loanpro-backend/internal/models"
	"github.com/javajoker/loanpro-backend/internal/utils"
)

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthTokenExpired))
			c.Abort()
			return
		}

		// Set user info in context
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return requireRole(models.RoleAdmin, i18n.KeyAdminAccessDenied)
}

func CustomerRequired() gin.HandlerFunc {
	return requireRole(models.RoleCustomer, i18n.KeyAuthCustomerOnly)
}

func requireRole(role models.Role, messageKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, exists := utils.GetRoleFromContext(c)
		if !exists || current != string(role) {
			utils.ForbiddenResponse(c, i18n.T(utils.GetLangFromContext(c), messageKey))
			c.Abort()
			return
		}
		c.Next()
	}
}
