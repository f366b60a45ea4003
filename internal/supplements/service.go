package supplements

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

// Service defines the behavior needed by the custom-supplements controller.
type Service interface {
	Add(ctx context.Context, userID uuid.UUID, req AddCustomSupplementRequest) (*CustomSupplementDTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]CustomSupplementDTO, error)
	CheckDuplicates(ctx context.Context, userID uuid.UUID, candidate DuplicateCandidate) (*DuplicateResult, error)
}

// AddCustomSupplementRequest captures the payload for a user-authored product.
type AddCustomSupplementRequest struct {
	ProductName string  `json:"product_name" validate:"required"`
	BrandName   *string `json:"brand_name,omitempty"`
	UPCSku      *string `json:"upc_sku,omitempty"`
	ServingSize *string `json:"serving_size,omitempty"`
	ProductType *string `json:"product_type,omitempty"`
	Description *string `json:"description,omitempty"`
}

type customRepository interface {
	Create(ctx context.Context, dto CreateCustomSupplementDTO) (*models.CustomSupplement, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CustomSupplement, error)
}

type duplicateDetector interface {
	FindDuplicates(ctx context.Context, userID uuid.UUID, candidate DuplicateCandidate) (*DuplicateResult, error)
}

// ServiceParams bundles the dependencies required to build a supplements service.
type ServiceParams struct {
	Repo     customRepository
	Detector duplicateDetector
}

type service struct {
	repo     customRepository
	detector duplicateDetector
}

// NewService constructs a supplements service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("supplements repository is required")
	}
	if params.Detector == nil {
		return nil, fmt.Errorf("duplicate detector is required")
	}
	return &service{
		repo:     params.Repo,
		detector: params.Detector,
	}, nil
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, req AddCustomSupplementRequest) (*CustomSupplementDTO, error) {
	name := strings.TrimSpace(req.ProductName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_name is required")
	}

	supplement, err := s.repo.Create(ctx, CreateCustomSupplementDTO{
		UserID:      userID,
		ProductName: name,
		BrandName:   req.BrandName,
		UPCSku:      req.UPCSku,
		ServingSize: req.ServingSize,
		ProductType: req.ProductType,
		Description: req.Description,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create custom supplement")
	}
	return FromModel(supplement), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]CustomSupplementDTO, error) {
	supplements, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list custom supplements")
	}
	out := make([]CustomSupplementDTO, 0, len(supplements))
	for i := range supplements {
		out = append(out, *FromModel(&supplements[i]))
	}
	return out, nil
}

func (s *service) CheckDuplicates(ctx context.Context, userID uuid.UUID, candidate DuplicateCandidate) (*DuplicateResult, error) {
	return s.detector.FindDuplicates(ctx, userID, candidate)
}
