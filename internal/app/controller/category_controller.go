package controller

import (
	"net/http"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	appErrors "github.com/MPA-Digital-Solutions/TechMedis/internal/errors"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/middleware"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/taxonomy"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	subcategoryRepo repository.SubcategoryRepository
}

func NewCategoryController(subcategoryRepo repository.SubcategoryRepository) *CategoryController {
	return &CategoryController{
		subcategoryRepo: subcategoryRepo,
	}
}

type categoryResponse struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Main  string `json:"main"`
}

// ListCategories returns the category tree for the navigation menus.
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	categories := make([]categoryResponse, 0)
	for _, category := range taxonomy.Categories() {
		categories = append(categories, categoryResponse{
			Slug:  string(category),
			Label: taxonomy.Label(category),
			Main:  string(taxonomy.MainCategoryFor(category)),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// ListSubcategories returns the filters of one category, from the table
// seeded off the static taxonomy plus any admin-added rows.
// GET /api/v1/categories/:category/subcategories
func (ctrl *CategoryController) ListSubcategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	category := c.Param("category")

	if !taxonomy.IsValidCategory(category) {
		appErrors.NotFound(c, appErrors.ProductInvalidCategory, "La categoría no existe")
		return
	}

	records, err := ctrl.subcategoryRepo.FindByCategory(category)
	if err != nil {
		log.Error("Failed to fetch subcategories", err, map[string]interface{}{
			"category": category,
		})
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":      category,
		"subcategories": records,
	})
}
