package db

import (
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/taxonomy"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"gorm.io/gorm/clause"
)

// Migrate runs schema migrations and seeds the taxonomy tables.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Product{},
		&model.Client{},
		&model.ConfigEntry{},
		&model.SubcategoryRecord{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedSubcategories(); err != nil {
		logger.Error("Failed to seed subcategories during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedSubcategories mirrors the static taxonomy into the subcategories
// table. Upserts by (category, slug) so renames in the table propagate
// while rows added by the admin survive.
func seedSubcategories() error {
	logger.Info("Seeding subcategory data...")

	var records []model.SubcategoryRecord
	for _, category := range taxonomy.Categories() {
		for _, sub := range taxonomy.SubcategoriesFor(category) {
			records = append(records, model.SubcategoryRecord{
				Name:     sub.Name,
				Slug:     sub.Slug,
				Category: string(category),
				Level:    1,
			})
		}
	}

	if len(records) == 0 {
		return nil
	}

	err := DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "level", "parent_slug"}),
	}).Create(&records).Error
	if err != nil {
		return err
	}

	logger.Info("Subcategories seeded successfully", map[string]interface{}{
		"count": len(records),
	})
	return nil
}
