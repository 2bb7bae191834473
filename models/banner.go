package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Valid banner placements.
const (
	BannerPlacementMain    = "main"
	BannerPlacementSidebar = "sidebar"
	BannerPlacementFooter  = "footer"
)

type Banner struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	Alt       string         `gorm:"default:Banner" json:"alt"`
	Placement string         `gorm:"not null;index" json:"placement"` // main, sidebar, footer
	Position  string         `gorm:"not null" json:"position"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Banner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
