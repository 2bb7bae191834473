package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a node in the catalog tree. FullSlug is the materialized path
// of ancestor slugs ("laptops/gaming-laptops") and Level is the depth, both
// derived from the parent chain and kept in sync by the category handler
// whenever a node is renamed or re-parented.
type Category struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	FullSlug      string         `gorm:"uniqueIndex;not null" json:"full_slug"`
	Description   string         `gorm:"type:text" json:"description"`
	ParentID      *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent        *Category      `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Level         int            `gorm:"default:0" json:"level"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Subcategories []Category     `gorm:"foreignKey:ParentID" json:"subcategories,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
