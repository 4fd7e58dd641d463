package dto

import (
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
)

// LoginRequest defines the credentials for staff login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateUserRequest defines the data needed to create a staff user.
type CreateUserRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Name     string          `json:"name" validate:"required,max=100"`
	Password string          `json:"password" validate:"required,min=8"`
	Role     domain.UserRole `json:"role" validate:"required,oneof=ADMIN CASHIER"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Name   string          `json:"name"`
	Role   domain.UserRole `json:"role"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{UserID: u.UserID, Email: u.Email, Name: u.Name, Role: u.Role}
}
