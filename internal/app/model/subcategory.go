package model

import (
	"time"
)

// SubcategoryRecord mirrors the taxonomy tree into the database so the
// admin panel can list and extend filters without a redeploy. Level 1
// entries hang off a category, level 2 entries off a level 1 slug.
type SubcategoryRecord struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Slug       string    `gorm:"uniqueIndex:idx_subcategory_category_slug;not null" json:"slug"`
	Category   string    `gorm:"uniqueIndex:idx_subcategory_category_slug;not null" json:"category"`
	Level      int       `gorm:"default:1" json:"level"`
	ParentSlug string    `json:"parent_slug"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (SubcategoryRecord) TableName() string {
	return "subcategories"
}
