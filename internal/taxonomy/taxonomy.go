// Package taxonomy holds the category tree for the catalog.
//
// Three levels: main category (navbar) -> category (stored in the product's
// "category" column) -> subcategory (stored in "subcategory"/"subcategory2").
// The tree is configuration data, kept in one table here and mirrored into
// the subcategories table on migration so the admin can extend it without a
// redeploy.
package taxonomy

// MainCategory is the top navigation level.
type MainCategory string

const (
	MainProductos   MainCategory = "productos"
	MainVeterinaria MainCategory = "veterinaria"
)

// Category is the second level, stored on each product.
type Category string

const (
	CategoryRadiologia          Category = "radiologia"
	CategoryMamografia          Category = "mamografia"
	CategoryImpresorasPeliculas Category = "impresoras-peliculas"
	CategorySistemasPACRIS      Category = "sistemas-pac-ris"
	CategoryDigitalDirectaVet   Category = "digitalizacion-directa-veterinaria"
	CategoryDigitalIndirectaVet Category = "digitalizacion-indirecta-veterinaria"
	CategoryEquiposRXPortatiles Category = "equipos-rx-portatiles"
)

// Subcategory is a third-level filter inside a category page.
type Subcategory struct {
	Name string
	Slug string
}

var mainCategoryLabels = map[MainCategory]string{
	MainProductos:   "Productos",
	MainVeterinaria: "Veterinaria",
}

var categoryLabels = map[Category]string{
	CategoryRadiologia:          "Radiología",
	CategoryMamografia:          "Mamografía",
	CategoryImpresorasPeliculas: "Impresoras de Películas",
	CategorySistemasPACRIS:      "Sistemas PAC RIS",
	CategoryDigitalDirectaVet:   "Digitalización Directa Veterinaria",
	CategoryDigitalIndirectaVet: "Digitalización Indirecta Veterinaria",
	CategoryEquiposRXPortatiles: "Equipos de RX Portátiles",
}

var categoriesByMain = map[MainCategory][]Category{
	MainProductos: {
		CategoryRadiologia,
		CategoryMamografia,
		CategoryImpresorasPeliculas,
		CategorySistemasPACRIS,
	},
	MainVeterinaria: {
		CategoryDigitalDirectaVet,
		CategoryDigitalIndirectaVet,
		CategoryEquiposRXPortatiles,
	},
}

var subcategoriesByCategory = map[Category][]Subcategory{
	CategoryRadiologia: {
		{Name: "Equipos de Rayos X", Slug: "equipos-de-rayos-x"},
		{Name: "Digitalizadores Directos", Slug: "digitalizadores-directos"},
		{Name: "Digitalizadores Indirectos", Slug: "digitalizadores-indirectos"},
	},
	CategoryMamografia: {
		{Name: "Mamografos", Slug: "mamografos"},
		{Name: "Digitalizadores", Slug: "digitalizadores"},
	},
	CategoryImpresorasPeliculas: {},
	CategorySistemasPACRIS:      {},
	CategoryDigitalDirectaVet:   {},
	CategoryDigitalIndirectaVet: {},
	CategoryEquiposRXPortatiles: {},
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryLabels))
	for _, main := range []MainCategory{MainProductos, MainVeterinaria} {
		out = append(out, categoriesByMain[main]...)
	}
	return out
}

// CategoriesFor returns the categories under one main category.
func CategoriesFor(main MainCategory) []Category {
	return categoriesByMain[main]
}

// SubcategoriesFor returns the subcategory filters of a category.
func SubcategoriesFor(category Category) []Subcategory {
	return subcategoriesByCategory[category]
}

// Label returns the display name for a category, or the slug itself when
// the category is unknown (tolerates records written by older taxonomies).
func Label(category Category) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return string(category)
}

// MainLabel returns the display name for a main category.
func MainLabel(main MainCategory) string {
	return mainCategoryLabels[main]
}

// MainCategoryFor returns the main category a category belongs to,
// defaulting to productos.
func MainCategoryFor(category Category) MainCategory {
	for main, cats := range categoriesByMain {
		for _, c := range cats {
			if c == category {
				return main
			}
		}
	}
	return MainProductos
}

// IsValidCategory reports whether the slug names a known category.
func IsValidCategory(slug string) bool {
	_, ok := categoryLabels[Category(slug)]
	return ok
}

// IsValidSubcategory reports whether the slug names a subcategory of the
// given category. The empty slug is valid (subcategories are optional).
func IsValidSubcategory(category Category, slug string) bool {
	if slug == "" {
		return true
	}
	for _, sub := range subcategoriesByCategory[category] {
		if sub.Slug == slug {
			return true
		}
	}
	return false
}
