// internal/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/i18n"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ActorRequired resolves the acting account from the x-user-email header.
// Requests without a resolvable account are rejected before reaching handlers.
func ActorRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetString("lang")
		if lang == "" {
			lang = "pt_BR"
		}

		email := strings.TrimSpace(c.GetHeader("x-user-email"))
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": i18n.T(lang, i18n.KeyAuthUserNotFound),
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": err.Error(),
				})
			}
			c.Abort()
			return
		}

		c.Set("actor", &user)
		c.Set("user_id", user.ID.String())
		c.Set("user_email", user.Email)
		c.Set("is_admin", user.IsAdmin)
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		lang := c.GetString("lang")
		if lang == "" {
			lang = "pt_BR"
		}

		isAdmin, exists := c.Get("is_admin")
		if !exists || isAdmin != true {
			c.JSON(http.StatusForbidden, gin.H{
				"error": i18n.T(lang, i18n.KeyAdminAccessDenied),
			})
			c.Abort()
			return
		}
		c.Next()
	})
}

// OptionalSession parses a Bearer session token when present. Stripe webhooks
// and the public auth endpoints run without an actor, so a missing or invalid
// token is not an error here.
func OptionalSession() gin.HandlerFunc {
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

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("session_user_id", claims.UserID)
		c.Set("session_email", claims.Email)
		c.Next()
	}
}
