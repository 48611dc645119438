package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noah-isme/qr-attendance-api/internal/models"
)

const (
	usersCollection          = "users"
	attendanceLogsCollection = "attendancelogs"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StudentID string             `bson:"studentId"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role"`
	Contact   string             `bson:"contact,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func newUserDocument(user models.User) userDocument {
	return userDocument{
		StudentID: user.StudentID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Contact:   user.Contact,
		CreatedAt: user.CreatedAt,
	}
}

func (d userDocument) model() models.User {
	return models.User{
		ID:        d.ID.Hex(),
		StudentID: d.StudentID,
		Name:      d.Name,
		Email:     d.Email,
		Role:      d.Role,
		Contact:   d.Contact,
		CreatedAt: d.CreatedAt,
	}
}

type attendanceLogDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StudentID string             `bson:"studentId"`
	Date      string             `bson:"date"`
	Status    string             `bson:"status"`
	Time      string             `bson:"time"`
	Timestamp string             `bson:"timestamp"`
	Name      string             `bson:"name"`
	Role      string             `bson:"role"`
	Contact   string             `bson:"contact"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func newAttendanceLogDocument(log models.AttendanceLog) attendanceLogDocument {
	return attendanceLogDocument{
		StudentID: log.StudentID,
		Date:      log.Date,
		Status:    log.Status,
		Time:      log.Time,
		Timestamp: log.Timestamp,
		Name:      log.Name,
		Role:      log.Role,
		Contact:   log.Contact,
		Email:     log.Email,
		CreatedAt: log.CreatedAt,
	}
}

func (d attendanceLogDocument) model() models.AttendanceLog {
	return models.AttendanceLog{
		ID:        d.ID.Hex(),
		StudentID: d.StudentID,
		Date:      d.Date,
		Status:    d.Status,
		Time:      d.Time,
		Timestamp: d.Timestamp,
		Name:      d.Name,
		Role:      d.Role,
		Contact:   d.Contact,
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
	}
}
