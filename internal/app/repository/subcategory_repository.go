package repository

import (
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"gorm.io/gorm"
)

type SubcategoryRepository interface {
	FindAll() ([]model.SubcategoryRecord, error)
	FindByCategory(category string) ([]model.SubcategoryRecord, error)
	Create(record *model.SubcategoryRecord) error
}

type subcategoryRepository struct {
	db *gorm.DB
}

func NewSubcategoryRepository(db *gorm.DB) SubcategoryRepository {
	return &subcategoryRepository{db: db}
}

func (r *subcategoryRepository) FindAll() ([]model.SubcategoryRecord, error) {
	var records []model.SubcategoryRecord
	if err := r.db.Order("category ASC, level ASC, name ASC").Find(&records).Error; err != nil {
		logger.Error("Failed to find subcategories in database", err)
		return nil, err
	}
	return records, nil
}

func (r *subcategoryRepository) FindByCategory(category string) ([]model.SubcategoryRecord, error) {
	var records []model.SubcategoryRecord
	err := r.db.Where("category = ?", category).
		Order("level ASC, name ASC").
		Find(&records).Error
	if err != nil {
		logger.Error("Failed to find subcategories by category in database", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}
	return records, nil
}

func (r *subcategoryRepository) Create(record *model.SubcategoryRecord) error {
	logger.Debug("Creating subcategory in database", map[string]interface{}{
		"category": record.Category,
		"slug":     record.Slug,
	})

	if err := r.db.Create(record).Error; err != nil {
		logger.Error("Failed to create subcategory in database", err, map[string]interface{}{
			"category": record.Category,
			"slug":     record.Slug,
		})
		return err
	}
	return nil
}
