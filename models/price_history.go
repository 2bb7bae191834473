package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceHistory records every price a product has been sold at. A row is
// appended on product creation and whenever an update changes the price.
type PriceHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *PriceHistory) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
