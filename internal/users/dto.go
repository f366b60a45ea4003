package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	dbtypes "github.com/lcervantes/pantrylog-backend/pkg/db/types"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth string     `json:"date_of_birth"`
	Height      *string    `json:"height,omitempty"`
	Weight      *string    `json:"weight,omitempty"`
	Sports      []string   `json:"sports"`
	Allergies   []string   `json:"allergies"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	DateOfBirth  string
	Height       *string
	Weight       *string
	Sports       []string
	Allergies    []string
}

// UpdateProfileDTO carries the mutable profile fields. Nil pointers are left untouched.
type UpdateProfileDTO struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *string
	Height      *string
	Weight      *string
	Sports      []string
	Allergies   []string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DateOfBirth: u.DateOfBirth,
		Height:      u.Height,
		Weight:      u.Weight,
		Sports:      append([]string(nil), []string(u.Sports)...),
		Allergies:   append([]string(nil), []string(u.Allergies)...),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	sports := c.Sports
	if sports == nil {
		sports = []string{}
	} else {
		sports = append([]string(nil), sports...)
	}
	allergies := c.Allergies
	if allergies == nil {
		allergies = []string{}
	} else {
		allergies = append([]string(nil), allergies...)
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		DateOfBirth:  c.DateOfBirth,
		Height:       c.Height,
		Weight:       c.Weight,
		Sports:       dbtypes.StringArray(sports),
		Allergies:    dbtypes.StringArray(allergies),
	}
}
