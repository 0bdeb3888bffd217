package service

import (
	"testing"
	"time"

	"github.com/MPA-Digital-Solutions/TechMedis/config"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := util.HashPassword("clave-segura")
	require.NoError(t, err)

	return NewAuthService(&config.AdminConfig{
		Username:      "admin",
		PasswordHash:  hash,
		SessionSecret: "secreto-de-prueba",
		SessionExpiry: time.Hour,
	})
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(t)

	token, expiresAt, err := svc.Login("admin", "clave-segura")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	username, err := svc.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestAuthService_Login_Rejected(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "Wrong password", username: "admin", password: "incorrecta"},
		{name: "Wrong username", username: "otro", password: "clave-segura"},
		{name: "Both empty", username: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Login_PlainPasswordFallback(t *testing.T) {
	svc := NewAuthService(&config.AdminConfig{
		Username:      "admin",
		Password:      "desarrollo",
		SessionSecret: "secreto-de-prueba",
		SessionExpiry: time.Hour,
	})

	_, _, err := svc.Login("admin", "desarrollo")
	assert.NoError(t, err)

	_, _, err = svc.Login("admin", "otra")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateSession_Invalid(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ValidateSession("no-es-un-token")
	assert.ErrorIs(t, err, ErrSessionInvalid)

	// Token signed with a different secret.
	other, err := util.GenerateSessionToken("admin", "otro-secreto", time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateSession(other)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	svc := newAuthService(t)

	expired, err := util.GenerateSessionToken("admin", "secreto-de-prueba", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateSession(expired)
	assert.ErrorIs(t, err, ErrSessionExpired)
}
