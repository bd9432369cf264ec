package models

import (
	"time"

	"github.com/google/uuid"
)

// User carries both authentication paths: password accounts hold a bcrypt
// hash, Firebase-backed accounts hold the provider UID. A password account
// may later acquire a FirebaseUID (account linking); the reverse never
// happens automatically.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirebaseUID  *string   `gorm:"size:128;uniqueIndex" json:"-"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash *string   `json:"-"`
	PushToken    *string   `gorm:"size:255" json:"pushToken,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsFirebaseUser reports whether the account is bound to a Firebase identity.
func (u *User) IsFirebaseUser() bool {
	return u.FirebaseUID != nil && *u.FirebaseUID != ""
}
