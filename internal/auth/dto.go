package auth

import (
	"github.com/lcervantes/pantrylog-backend/internal/users"
)

// SignupRequest captures the payload required to create an account.
type SignupRequest struct {
	Username    string   `json:"username" validate:"required,min=3"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	FirstName   string   `json:"first_name" validate:"required"`
	LastName    string   `json:"last_name" validate:"required"`
	DateOfBirth string   `json:"date_of_birth" validate:"required"`
	Height      *string  `json:"height,omitempty"`
	Weight      *string  `json:"weight,omitempty"`
	Sports      []string `json:"sports" validate:"required,min=1"`
	Allergies   []string `json:"allergies" validate:"required"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the token pair and user produced by signup or login.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token and its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
