package repository

import (
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"gorm.io/gorm"
)

const defaultClientLimit = 50

type ClientFilter struct {
	Status *model.ClientStatus
	Source string
	Limit  int
	Offset int
}

type ClientRepository interface {
	Create(client *model.Client) error
	FindAll() ([]model.Client, error)
	FindWithFilter(filter ClientFilter) ([]model.Client, error)
	FindByID(id uint) (*model.Client, error)
	UpdateStatus(id uint, status model.ClientStatus) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(client *model.Client) error {
	logger.Debug("Creating client in database", map[string]interface{}{
		"name":   client.Name,
		"source": client.Source,
	})

	if err := r.db.Create(client).Error; err != nil {
		logger.Error("Failed to create client in database", err, map[string]interface{}{
			"name": client.Name,
		})
		return err
	}

	logger.Debug("Client created in database", map[string]interface{}{
		"client_id": client.ID,
	})
	return nil
}

func (r *clientRepository) FindAll() ([]model.Client, error) {
	var clients []model.Client
	if err := r.db.Order("created_at DESC").Find(&clients).Error; err != nil {
		logger.Error("Failed to find all clients in database", err)
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) FindWithFilter(filter ClientFilter) ([]model.Client, error) {
	logger.Debug("Finding clients with filter", map[string]interface{}{
		"status": filter.Status,
		"source": filter.Source,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})

	query := r.db.Model(&model.Client{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultClientLimit
	}
	query = query.Order("created_at DESC").Limit(limit)

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var clients []model.Client
	if err := query.Find(&clients).Error; err != nil {
		logger.Error("Failed to find clients with filter", err, map[string]interface{}{
			"status": filter.Status,
		})
		return nil, err
	}

	logger.Debug("Clients found with filter", map[string]interface{}{
		"count": len(clients),
	})
	return clients, nil
}

func (r *clientRepository) FindByID(id uint) (*model.Client, error) {
	var client model.Client
	if err := r.db.First(&client, id).Error; err != nil {
		logger.Error("Failed to find client by ID in database", err, map[string]interface{}{
			"client_id": id,
		})
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) UpdateStatus(id uint, status model.ClientStatus) error {
	logger.Debug("Updating client status in database", map[string]interface{}{
		"client_id": id,
		"status":    status,
	})

	result := r.db.Model(&model.Client{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update client status in database", result.Error, map[string]interface{}{
			"client_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
