package model

import (
	"time"
)

// Config keys the application reads.
const (
	ConfigKeyWhatsAppNumber = "whatsapp_number"
)

// ConfigEntry is one key/value row of site configuration.
type ConfigEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ConfigEntry) TableName() string {
	return "site_config"
}
