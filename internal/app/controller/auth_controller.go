package controller

import (
	"errors"
	"net/http"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/service"
	appErrors "github.com/MPA-Digital-Solutions/TechMedis/internal/errors"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService  service.AuthService
	secureCookie bool
}

func NewAuthController(authService service.AuthService, secureCookie bool) *AuthController {
	return &AuthController{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the admin credentials and sets the session cookie.
// POST /api/v1/admin/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Usuario y contraseña son obligatorios")
		return
	}

	token, expiresAt, err := ctrl.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			appErrors.RespondWithError(c, http.StatusUnauthorized, appErrors.AuthInvalidCredentials, "Usuario o contraseña incorrectos")
			return
		}
		log.Error("Failed to process login", err, nil)
		appErrors.InternalError(c, "")
		return
	}

	ctrl.setSessionCookie(c, token, int(ctrl.authService.SessionExpiry().Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"message":    "Sesión iniciada",
		"expires_at": expiresAt,
	})
}

// Logout clears the session cookie.
// POST /api/v1/admin/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	ctrl.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{
		"message": "Sesión cerrada",
	})
}

// Session reports whether the current request carries a valid session.
// GET /api/v1/admin/session
func (ctrl *AuthController) Session(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	username, err := ctrl.authService.ValidateSession(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      username,
	})
}

func (ctrl *AuthController) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", ctrl.secureCookie, true)
}
