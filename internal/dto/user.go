package dto

import (
	"time"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user profile.
type CreateUserRequest struct {
	Username         string `json:"username" binding:"required"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"omitempty,uppercase,len=3"`
}

// UpdateUserRequest defines the data allowed for updating a user profile.
type UpdateUserRequest struct {
	Username *string `json:"username"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID           string    `json:"userID"`
	Username         string    `json:"username"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	CreatedAt        time.Time `json:"createdAt"`
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:           u.UserID,
		Username:         u.Username,
		BaseCurrencyCode: u.BaseCurrencyCode,
		CreatedAt:        u.CreatedAt,
		LastUpdatedAt:    u.LastUpdatedAt,
	}
}
