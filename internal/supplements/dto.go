package supplements

import (
	"time"

	"github.com/google/uuid"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
)

// CustomSupplementDTO is the transport shape for a user-authored product.
type CustomSupplementDTO struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"product_name"`
	BrandName   *string   `json:"brand_name,omitempty"`
	UPCSku      *string   `json:"upc_sku,omitempty"`
	ServingSize *string   `json:"serving_size,omitempty"`
	ProductType *string   `json:"product_type,omitempty"`
	Description *string   `json:"description,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// CreateCustomSupplementDTO holds the data required to persist a custom supplement.
type CreateCustomSupplementDTO struct {
	UserID      uuid.UUID
	ProductName string
	BrandName   *string
	UPCSku      *string
	ServingSize *string
	ProductType *string
	Description *string
}

func FromModel(m *models.CustomSupplement) *CustomSupplementDTO {
	if m == nil {
		return nil
	}
	return &CustomSupplementDTO{
		ID:          m.ID,
		ProductName: m.ProductName,
		BrandName:   m.BrandName,
		UPCSku:      m.UPCSku,
		ServingSize: m.ServingSize,
		ProductType: m.ProductType,
		Description: m.Description,
		AddedAt:     m.AddedAt,
	}
}

func (c CreateCustomSupplementDTO) ToModel() *models.CustomSupplement {
	return &models.CustomSupplement{
		ID:          uuid.New(),
		UserID:      c.UserID,
		ProductName: c.ProductName,
		BrandName:   c.BrandName,
		UPCSku:      c.UPCSku,
		ServingSize: c.ServingSize,
		ProductType: c.ProductType,
		Description: c.Description,
	}
}
