package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationLog records one push fan-out attempt. Written best-effort by
// the dispatch consumer; never read on the request path.
type NotificationLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID  string         `gorm:"size:64;index" json:"product_id"`
	Title      string         `gorm:"size:255" json:"title"`
	Body       string         `gorm:"size:500" json:"body"`
	Payload    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"payload"`
	Recipients int            `json:"recipients"`
	Delivered  int            `json:"delivered"`
	Failed     int            `json:"failed"`
	CreatedAt  time.Time      `json:"created_at"`
}
