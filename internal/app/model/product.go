package model

import (
	"time"
)

type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
)

// MetadataValue holds one technical specification entry. Values come from
// the admin as JSON and keep their original type (string, number, bool or
// null) so the catalog can render them without reparsing.
type Metadata map[string]interface{}

// Product is a catalog item. Deletes are hard: the slug must become
// reusable immediately, and the image files under the slug are removed in
// the same operation.
type Product struct {
	ID           uint          `gorm:"primarykey" json:"id"`
	Slug         string        `gorm:"uniqueIndex;not null" json:"slug"`
	Name         string        `gorm:"not null" json:"name"`
	Description  string        `gorm:"type:text" json:"description"`
	Status       ProductStatus `gorm:"type:varchar(20);default:active" json:"status"`
	Category     string        `gorm:"type:varchar(100);not null" json:"category"`
	Subcategory  string        `gorm:"type:varchar(100)" json:"subcategory"`
	Subcategory2 string        `gorm:"type:varchar(100)" json:"subcategory2"`
	Image        string        `json:"image"` // main image URL, with cache-buster query
	Metadata     Metadata      `gorm:"serializer:json" json:"metadata"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// IsActive reports whether the product is visible on the public catalog.
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}
