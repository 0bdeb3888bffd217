package repository

import (
	"testing"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupClientTest(t *testing.T) (*gorm.DB, ClientRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewClientRepository(testDB)
	return testDB, repo
}

func TestClientRepository_Create(t *testing.T) {
	testDB, repo := setupClientTest(t)
	defer db.CleanupTestDB(testDB)

	client := &model.Client{
		Name:    "Dra. López",
		Email:   "lopez@clinica.com",
		Phone:   "+54 9 11 5555-1234",
		Company: "Clínica San Martín",
		Message: "Necesito cotización de un ecógrafo",
		Source:  model.ClientSourceContactForm,
		Status:  model.ClientPending,
	}

	err := repo.Create(client)
	assert.NoError(t, err)
	assert.NotZero(t, client.ID)
}

func TestClientRepository_FindWithFilter(t *testing.T) {
	testDB, repo := setupClientTest(t)
	defer db.CleanupTestDB(testDB)

	clients := []model.Client{
		{Name: "Uno", Email: "uno@x.com", Source: model.ClientSourceContactForm, Status: model.ClientPending},
		{Name: "Dos", Email: "dos@x.com", Source: model.ClientSourceContactForm, Status: model.ClientContacted},
		{Name: "Tres", Email: "tres@x.com", Source: "whatsapp", Status: model.ClientPending},
	}
	for i := range clients {
		require.NoError(t, repo.Create(&clients[i]))
	}

	t.Run("By status", func(t *testing.T) {
		status := model.ClientPending
		found, err := repo.FindWithFilter(ClientFilter{Status: &status})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("By source", func(t *testing.T) {
		found, err := repo.FindWithFilter(ClientFilter{Source: "whatsapp"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Tres", found[0].Name)
	})

	t.Run("Default limit applies", func(t *testing.T) {
		found, err := repo.FindWithFilter(ClientFilter{})
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})
}

func TestClientRepository_UpdateStatus(t *testing.T) {
	testDB, repo := setupClientTest(t)
	defer db.CleanupTestDB(testDB)

	client := &model.Client{Name: "Uno", Email: "uno@x.com", Status: model.ClientPending}
	require.NoError(t, repo.Create(client))

	require.NoError(t, repo.UpdateStatus(client.ID, model.ClientConverted))

	found, err := repo.FindByID(client.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClientConverted, found.Status)
}

func TestClientRepository_UpdateStatus_NotFound(t *testing.T) {
	testDB, repo := setupClientTest(t)
	defer db.CleanupTestDB(testDB)

	err := repo.UpdateStatus(42, model.ClientContacted)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
