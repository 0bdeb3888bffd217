package middleware

import (
	"net/http"
	"strings"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/errors"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/util"
	"github.com/gin-gonic/gin"
)

// SessionCookieName is the admin session cookie.
const SessionCookieName = "techmedis_admin_session"

// AdminUserKey is the context key holding the authenticated admin username.
const AdminUserKey = "admin_user"

type AuthMiddleware struct {
	sessionSecret string
}

func NewAuthMiddleware(sessionSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		sessionSecret: sessionSecret,
	}
}

// RequireAdmin validates the admin session. The cookie is the normal
// path; a bearer Authorization header works as a fallback for API
// clients without a cookie jar.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || parts[0] != "Bearer" {
					log.Warn("Invalid authorization header format", map[string]interface{}{
						"path": c.Request.URL.Path,
					})
					errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthSessionInvalid, "Formato de autenticación inválido")
					c.Abort()
					return
				}
				token = parts[1]
			}
		}

		if token == "" {
			log.Warn("Missing admin session", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Debe iniciar sesión para continuar")
			c.Abort()
			return
		}

		claims, err := util.ValidateSessionToken(token, m.sessionSecret)
		if err != nil {
			log.Warn("Session validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthSessionExpired, "La sesión expiró. Inicie sesión nuevamente")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthSessionInvalid, "Sesión inválida")
			}
			c.Abort()
			return
		}

		c.Set(AdminUserKey, claims.Username)

		log.Debug("Admin authenticated successfully", map[string]interface{}{
			"username": claims.Username,
		})

		c.Next()
	}
}

// GetAdminUser extracts the admin username from context
func GetAdminUser(c *gin.Context) (string, bool) {
	username, exists := c.Get(AdminUserKey)
	if !exists {
		return "", false
	}
	return username.(string), true
}
