package repository

import (
	"testing"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewProductRepository(testDB)
	return testDB, repo
}

func newTestProduct(slug string) *model.Product {
	return &model.Product{
		Slug:        slug,
		Name:        "Ecógrafo 4D",
		Description: "Ecógrafo portátil con sonda convexa",
		Status:      model.StatusActive,
		Category:    "radiologia",
		Metadata: model.Metadata{
			"marca":    "Mindray",
			"garantia": float64(12),
			"portatil": true,
		},
	}
}

func TestProductRepository_Create(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newTestProduct("ecografo-4d")

	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
}

func TestProductRepository_Create_DuplicateSlug(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestProduct("ecografo-4d")))

	err := repo.Create(newTestProduct("ecografo-4d"))
	assert.Error(t, err)
}

func TestProductRepository_FindBySlug(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	created := newTestProduct("mamografo-digital")
	require.NoError(t, repo.Create(created))

	found, err := repo.FindBySlug("mamografo-digital")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Ecógrafo 4D", found.Name)
	assert.Equal(t, "Mindray", found.Metadata["marca"])
	assert.Equal(t, true, found.Metadata["portatil"])
}

func TestProductRepository_FindBySlug_NotFound(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := repo.FindBySlug("inexistente")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_ExistsBySlug(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newTestProduct("ecografo-4d")
	require.NoError(t, repo.Create(product))

	exists, err := repo.ExistsBySlug("ecografo-4d", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// The product itself is excluded when editing.
	exists, err = repo.ExistsBySlug("ecografo-4d", product.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsBySlug("otro-slug", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProductRepository_FindWithFilter(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	active := newTestProduct("activo")
	require.NoError(t, repo.Create(active))

	inactive := newTestProduct("inactivo")
	inactive.Status = model.StatusInactive
	inactive.Category = "mamografia"
	require.NoError(t, repo.Create(inactive))

	vet := newTestProduct("veterinario")
	vet.Category = "equipos-rx-portatiles"
	vet.Subcategory = "digitalizadores"
	require.NoError(t, repo.Create(vet))

	t.Run("By status", func(t *testing.T) {
		status := model.StatusActive
		found, err := repo.FindWithFilter(ProductFilter{Status: &status})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("By category", func(t *testing.T) {
		found, err := repo.FindWithFilter(ProductFilter{Category: "mamografia"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "inactivo", found[0].Slug)
	})

	t.Run("By subcategory", func(t *testing.T) {
		found, err := repo.FindWithFilter(ProductFilter{Subcategory: "digitalizadores"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "veterinario", found[0].Slug)
	})

	t.Run("By search", func(t *testing.T) {
		found, err := repo.FindWithFilter(ProductFilter{Search: "Ecógrafo"})
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("With limit", func(t *testing.T) {
		found, err := repo.FindWithFilter(ProductFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})
}

func TestProductRepository_UpdateStatus(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newTestProduct("ecografo-4d")
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.UpdateStatus(product.ID, model.StatusInactive))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, found.Status)
}

func TestProductRepository_UpdateStatus_NotFound(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	err := repo.UpdateStatus(999, model.StatusInactive)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newTestProduct("ecografo-4d")
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.Delete(product.ID))

	_, err := repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Hard delete frees the slug for reuse.
	require.NoError(t, repo.Create(newTestProduct("ecografo-4d")))
}
