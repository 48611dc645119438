package dto

import (
	"time"

	"github.com/noah-isme/qr-attendance-api/internal/models"
)

// CreateAttendanceLogRequest captures a scanned attendance event.
type CreateAttendanceLogRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Timestamp string `json:"timestamp" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Role      string `json:"role" validate:"required"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
}

// AttendanceLogResponse serializes an attendance log.
type AttendanceLogResponse struct {
	ID        string    `json:"_id"`
	StudentID string    `json:"studentId"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	Time      string    `json:"time"`
	Timestamp string    `json:"timestamp"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAttendanceLogResponse converts a log model into its API representation.
func NewAttendanceLogResponse(log models.AttendanceLog) AttendanceLogResponse {
	return AttendanceLogResponse{
		ID:        log.ID,
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

// NewAttendanceLogResponses converts a slice of logs, never returning nil.
func NewAttendanceLogResponses(logs []models.AttendanceLog) []AttendanceLogResponse {
	responses := make([]AttendanceLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, NewAttendanceLogResponse(log))
	}
	return responses
}
