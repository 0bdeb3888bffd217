package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/db"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/taxonomy"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryControllerTest(t *testing.T) (*gin.Engine, repository.SubcategoryRepository) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	subcategoryRepo := repository.NewSubcategoryRepository(testDB)
	categoryController := NewCategoryController(subcategoryRepo)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/categories", categoryController.ListCategories)
	router.GET("/categories/:category/subcategories", categoryController.ListSubcategories)

	return router, subcategoryRepo
}

func TestCategoryController_ListCategories(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	req := httptest.NewRequest("GET", "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []struct {
			Slug  string `json:"slug"`
			Label string `json:"label"`
			Main  string `json:"main"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Categories, len(taxonomy.Categories()))

	slugs := make(map[string]string)
	for _, category := range resp.Categories {
		slugs[category.Slug] = category.Main
	}
	assert.Equal(t, "productos", slugs["radiologia"])
	assert.Equal(t, "veterinaria", slugs["equipos-rx-portatiles"])
}

func TestCategoryController_ListSubcategories(t *testing.T) {
	router, repo := setupCategoryControllerTest(t)

	require.NoError(t, repo.Create(&model.SubcategoryRecord{
		Category: "radiologia",
		Slug:     "equipos-de-rayos-x",
		Name:     "Equipos de Rayos X",
	}))

	req := httptest.NewRequest("GET", "/categories/radiologia/subcategories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"category":"radiologia"`)
	assert.Contains(t, w.Body.String(), "equipos-de-rayos-x")
}

func TestCategoryController_ListSubcategories_UnknownCategory(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	req := httptest.NewRequest("GET", "/categories/inexistente/subcategories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_INVALID_CATEGORY")
}
