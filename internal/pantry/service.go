package pantry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	"github.com/lcervantes/pantrylog-backend/pkg/enums"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

// Service defines the behavior needed by the pantry controller.
type Service interface {
	Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*ItemDTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error)
	Remove(ctx context.Context, userID uuid.UUID, productID string, source enums.IntakeSource) error
}

// AddItemRequest captures the payload for adding a catalog product to the pantry.
type AddItemRequest struct {
	ProductID   string  `json:"product_id" validate:"required"`
	ProductName string  `json:"product_name" validate:"required"`
	BrandName   *string `json:"brand_name,omitempty"`
	UPCSku      *string `json:"upc_sku,omitempty"`
	ServingSize *string `json:"serving_size,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
}

type pantryRepository interface {
	Upsert(ctx context.Context, dto AddItemDTO) (*models.PantryItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error)
	DeleteByProductID(ctx context.Context, userID uuid.UUID, productID string) (int64, error)
}

type customRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CustomSupplement, error)
	DeleteByID(ctx context.Context, userID uuid.UUID, id string) (int64, error)
}

// ServiceParams bundles the dependencies required to build a pantry service.
type ServiceParams struct {
	PantryRepo pantryRepository
	CustomRepo customRepository
}

type service struct {
	pantry pantryRepository
	custom customRepository
}

// NewService constructs a pantry service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.PantryRepo == nil {
		return nil, fmt.Errorf("pantry repository is required")
	}
	if params.CustomRepo == nil {
		return nil, fmt.Errorf("custom supplements repository is required")
	}
	return &service{
		pantry: params.PantryRepo,
		custom: params.CustomRepo,
	}, nil
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*ItemDTO, error) {
	productID := strings.TrimSpace(req.ProductID)
	productName := strings.TrimSpace(req.ProductName)
	if productID == "" || productName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id and product_name are required")
	}
	if req.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	item, err := s.pantry.Upsert(ctx, AddItemDTO{
		UserID:      userID,
		ProductID:   productID,
		ProductName: productName,
		BrandName:   req.BrandName,
		UPCSku:      req.UPCSku,
		ServingSize: req.ServingSize,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert pantry item")
	}
	dto := fromPantryModel(item)
	return &dto, nil
}

// List merges catalog-backed rows and custom supplements into one view,
// newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error) {
	items, err := s.pantry.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pantry items")
	}
	customs, err := s.custom.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list custom supplements")
	}

	merged := make([]ItemDTO, 0, len(items)+len(customs))
	for i := range items {
		merged = append(merged, fromPantryModel(&items[i]))
	}
	for i := range customs {
		merged = append(merged, fromCustomModel(&customs[i]))
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].AddedAt.After(merged[j].AddedAt)
	})
	return merged, nil
}

// Remove routes the delete to the table named by the source discriminator.
func (s *service) Remove(ctx context.Context, userID uuid.UUID, productID string, source enums.IntakeSource) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if !source.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "source must be pantry or custom")
	}

	var (
		affected int64
		err      error
	)
	switch source {
	case enums.IntakeSourceCustom:
		affected, err = s.custom.DeleteByID(ctx, userID, productID)
	default:
		affected, err = s.pantry.DeleteByProductID(ctx, userID, productID)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete pantry item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return nil
}
