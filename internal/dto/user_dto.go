package dto

import (
	"time"

	"github.com/noah-isme/qr-attendance-api/internal/models"
)

// RegisterUserRequest captures the payload for registering a user.
type RegisterUserRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Role      string `json:"role"`
	Contact   string `json:"contact"`
}

// UserResponse serializes a registered user.
type UserResponse struct {
	ID        string    `json:"_id"`
	StudentID string    `json:"studentId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Contact   string    `json:"contact,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse converts a user model into its API representation.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		StudentID: user.StudentID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Contact:   user.Contact,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserResponses converts a slice of users, never returning nil.
func NewUserResponses(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
