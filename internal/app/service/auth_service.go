package service

import (
	"errors"
	"time"

	"github.com/MPA-Digital-Solutions/TechMedis/config"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionInvalid     = errors.New("session invalid")
)

// AuthService validates the single admin credential pair and issues
// signed session tokens.
type AuthService interface {
	Login(username, password string) (string, time.Time, error)
	ValidateSession(token string) (string, error)
	SessionExpiry() time.Duration
}

type authService struct {
	cfg *config.AdminConfig
}

func NewAuthService(cfg *config.AdminConfig) AuthService {
	return &authService{cfg: cfg}
}

// Login returns a signed session token and its expiry time. Both checks
// always run so a bad username costs the same as a bad password.
func (s *authService) Login(username, password string) (string, time.Time, error) {
	userOK := util.SecureCompare(username, s.cfg.Username)

	var passOK bool
	if s.cfg.PasswordHash != "" {
		passOK = util.VerifyPassword(s.cfg.PasswordHash, password)
	} else {
		passOK = util.SecureCompare(password, s.cfg.Password)
	}

	if !userOK || !passOK {
		logger.Warn("Admin login rejected", map[string]interface{}{
			"username": username,
		})
		return "", time.Time{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.cfg.SessionExpiry)
	token, err := util.GenerateSessionToken(username, s.cfg.SessionSecret, s.cfg.SessionExpiry)
	if err != nil {
		logger.Error("Failed to issue session token", err)
		return "", time.Time{}, err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"username": username,
	})
	return token, expiresAt, nil
}

// ValidateSession returns the username carried by a valid token.
func (s *authService) ValidateSession(token string) (string, error) {
	claims, err := util.ValidateSessionToken(token, s.cfg.SessionSecret)
	if err != nil {
		if errors.Is(err, util.ErrExpiredToken) {
			return "", ErrSessionExpired
		}
		return "", ErrSessionInvalid
	}
	return claims.Username, nil
}

func (s *authService) SessionExpiry() time.Duration {
	return s.cfg.SessionExpiry
}
