package service

import (
	"testing"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfigServiceTest(t *testing.T) ConfigService {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewConfigService(repository.NewConfigRepository(testDB))
}

func TestConfigService_SetAndGet(t *testing.T) {
	svc := setupConfigServiceTest(t)

	require.NoError(t, svc.Set("clave", "valor"))

	value, err := svc.Get("clave")
	require.NoError(t, err)
	assert.Equal(t, "valor", value)

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"clave": "valor"}, all)
}

func TestConfigService_Get_NotFound(t *testing.T) {
	svc := setupConfigServiceTest(t)

	_, err := svc.Get("inexistente")
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestConfigService_GetWhatsAppNumber(t *testing.T) {
	t.Run("Empty store returns fallback", func(t *testing.T) {
		svc := setupConfigServiceTest(t)
		assert.Equal(t, whatsAppFallback, svc.GetWhatsAppNumber())
	})

	t.Run("Configured number is sanitized to digits", func(t *testing.T) {
		svc := setupConfigServiceTest(t)
		require.NoError(t, svc.Set(model.ConfigKeyWhatsAppNumber, "+54 9 11 5555-1234"))
		assert.Equal(t, "5491155551234", svc.GetWhatsAppNumber())
	})

	t.Run("Value without digits returns fallback", func(t *testing.T) {
		svc := setupConfigServiceTest(t)
		require.NoError(t, svc.Set(model.ConfigKeyWhatsAppNumber, "sin número"))
		assert.Equal(t, whatsAppFallback, svc.GetWhatsAppNumber())
	})
}
