package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceLog captures a single attendance event scanned for a user.
//
// Name, Role, Contact and Email are copies of the user's values at write time and
// are never refreshed afterwards. Timestamp is opaque ISO-8601 text; range queries
// compare it as a string.
type AttendanceLog struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	StudentID string    `gorm:"type:text;index;not null" json:"studentId"`
	Date      string    `gorm:"type:text;not null" json:"date"`
	Status    string    `gorm:"type:text;not null" json:"status"`
	Time      string    `gorm:"type:text;not null" json:"time"`
	Timestamp string    `gorm:"type:text;index;not null" json:"timestamp"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Role      string    `gorm:"type:text;not null" json:"role"`
	Contact   string    `gorm:"type:text" json:"contact"`
	Email     string    `gorm:"type:text" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName keeps the collection name shared with the document store.
func (AttendanceLog) TableName() string {
	return "attendancelogs"
}

// BeforeCreate assigns a UUID primary key for relational backends.
func (l *AttendanceLog) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
