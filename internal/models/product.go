package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a discounted item announced by a supermarket. SupermarketID is
// a loose string reference, not a foreign key: deletion protection lives in
// the service layer, not the schema.
type Product struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name               string    `gorm:"not null;size:255" json:"name"`
	OriginalPrice      float64   `gorm:"not null" json:"originalPrice"`
	DiscountPrice      float64   `gorm:"not null" json:"discountPrice"`
	DiscountPercentage int       `gorm:"not null;check:discount_percentage >= 0 AND discount_percentage <= 100" json:"discountPercentage"`
	SupermarketID      string    `gorm:"not null;size:64;index" json:"supermarketId"`
	Image              string    `gorm:"type:text" json:"image,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
