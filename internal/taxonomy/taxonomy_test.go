package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategories(t *testing.T) {
	cats := Categories()

	assert.Len(t, cats, 7)
	assert.Equal(t, CategoryRadiologia, cats[0])
	assert.Equal(t, CategoryEquiposRXPortatiles, cats[len(cats)-1])
}

func TestCategoriesFor(t *testing.T) {
	assert.Len(t, CategoriesFor(MainProductos), 4)
	assert.Len(t, CategoriesFor(MainVeterinaria), 3)
	assert.Empty(t, CategoriesFor(MainCategory("otra")))
}

func TestMainCategoryFor(t *testing.T) {
	assert.Equal(t, MainProductos, MainCategoryFor(CategoryMamografia))
	assert.Equal(t, MainVeterinaria, MainCategoryFor(CategoryEquiposRXPortatiles))
	assert.Equal(t, MainProductos, MainCategoryFor(Category("desconocida")))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Radiología", Label(CategoryRadiologia))
	assert.Equal(t, "vieja-categoria", Label(Category("vieja-categoria")))
}

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		name string
		slug string
		want bool
	}{
		{name: "Known category", slug: "radiologia", want: true},
		{name: "Veterinary category", slug: "equipos-rx-portatiles", want: true},
		{name: "Main category is not a category", slug: "productos", want: false},
		{name: "Unknown slug", slug: "ecografia", want: false},
		{name: "Empty slug", slug: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidCategory(tt.slug))
		})
	}
}

func TestIsValidSubcategory(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		slug     string
		want     bool
	}{
		{name: "Known subcategory", category: CategoryRadiologia, slug: "equipos-de-rayos-x", want: true},
		{name: "Empty subcategory allowed", category: CategoryRadiologia, slug: "", want: true},
		{name: "Subcategory of other category", category: CategoryMamografia, slug: "equipos-de-rayos-x", want: false},
		{name: "Category without subcategories", category: CategorySistemasPACRIS, slug: "cualquiera", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSubcategory(tt.category, tt.slug))
		})
	}
}
