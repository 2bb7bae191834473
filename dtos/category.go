package dtos

import (
	"time"

	"shopdb-backend/models"

	"github.com/google/uuid"
)

// CategoryTree is the payload for the root-category listing: a category with
// its aggregate product count and fully expanded descendants.
type CategoryTree struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	FullSlug      string         `json:"full_slug"`
	Description   string         `json:"description"`
	ParentID      *uuid.UUID     `json:"parent_id,omitempty"`
	Level         int            `json:"level"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	ProductCount  int64          `json:"product_count"`
	Subcategories []CategoryTree `json:"subcategories"`
}

// NewCategoryTree builds a tree node from a category record; the caller fills
// in Subcategories.
func NewCategoryTree(c models.Category, productCount int64) CategoryTree {
	return CategoryTree{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		FullSlug:      c.FullSlug,
		Description:   c.Description,
		ParentID:      c.ParentID,
		Level:         c.Level,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		ProductCount:  productCount,
		Subcategories: []CategoryTree{},
	}
}

// CategoryWithSubtree is the update response: the repaired category plus the
// flattened list of every transitive descendant, parents first.
type CategoryWithSubtree struct {
	models.Category
	Subcategories []models.Category `json:"subcategories"`
}
