package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultUserRole is assigned when registration omits a role.
const DefaultUserRole = "Student"

// User represents a registered attendee identified by their student ID.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	StudentID string    `gorm:"type:text;uniqueIndex;not null" json:"studentId"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"type:text;not null;default:Student" json:"role"`
	Contact   string    `gorm:"type:text" json:"contact,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// BeforeCreate assigns a UUID primary key for relational backends.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
