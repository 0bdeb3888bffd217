package repository

import (
	"context"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfigRepository reads and writes the site_config key/value table.
// Reads are context-aware so callers can bound them with a deadline.
type ConfigRepository interface {
	Get(ctx context.Context, key string) (*model.ConfigEntry, error)
	GetAll(ctx context.Context) ([]model.ConfigEntry, error)
	Upsert(ctx context.Context, key, value string) error
}

type configRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) Get(ctx context.Context, key string) (*model.ConfigEntry, error) {
	var entry model.ConfigEntry
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *configRepository) GetAll(ctx context.Context) ([]model.ConfigEntry, error) {
	var entries []model.ConfigEntry
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&entries).Error; err != nil {
		logger.Error("Failed to read config entries from database", err)
		return nil, err
	}
	return entries, nil
}

func (r *configRepository) Upsert(ctx context.Context, key, value string) error {
	logger.Debug("Upserting config entry in database", map[string]interface{}{
		"key": key,
	})

	entry := model.ConfigEntry{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		logger.Error("Failed to upsert config entry in database", err, map[string]interface{}{
			"key": key,
		})
		return err
	}

	return nil
}
