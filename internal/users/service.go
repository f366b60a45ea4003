package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

// Service defines the behavior needed by the profile controller.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
}

// UpdateProfileRequest captures the mutable profile fields from the API.
type UpdateProfileRequest struct {
	FirstName   *string  `json:"first_name,omitempty"`
	LastName    *string  `json:"last_name,omitempty"`
	DateOfBirth *string  `json:"date_of_birth,omitempty"`
	Height      *string  `json:"height,omitempty"`
	Weight      *string  `json:"weight,omitempty"`
	Sports      []string `json:"sports,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
}

type profileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) (*models.User, error)
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo profileRepository
}

type service struct {
	repo profileRepository
}

// NewService constructs a profile service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	dto := UpdateProfileDTO{
		Height: req.Height,
		Weight: req.Weight,
	}

	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name cannot be empty")
		}
		dto.FirstName = &name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last_name cannot be empty")
		}
		dto.LastName = &name
	}
	if req.DateOfBirth != nil {
		dob := strings.TrimSpace(*req.DateOfBirth)
		if _, err := time.Parse("2006-01-02", dob); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "date_of_birth must be a YYYY-MM-DD date")
		}
		dto.DateOfBirth = &dob
	}
	if req.Sports != nil {
		if len(req.Sports) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sports cannot be empty")
		}
		dto.Sports = req.Sports
	}
	if req.Allergies != nil {
		dto.Allergies = req.Allergies
	}

	user, err := s.repo.UpdateProfile(ctx, userID, dto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return FromModel(user), nil
}
