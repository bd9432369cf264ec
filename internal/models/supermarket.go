package models

import (
	"time"

	"github.com/google/uuid"
)

// Supermarket is a map marker users browse for discounted products.
type Supermarket struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Address     string    `gorm:"size:500" json:"address,omitempty"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	Latitude    float64   `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude   float64   `gorm:"type:decimal(11,8);not null" json:"longitude"`
	Color       string    `gorm:"size:20;default:'#FF0000'" json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
