package pantry

import (
	"time"

	"github.com/google/uuid"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	"github.com/lcervantes/pantrylog-backend/pkg/enums"
)

// ItemDTO is the transport shape for one tracked product. Custom supplements
// appear alongside catalog-backed pantry rows with a source discriminator.
type ItemDTO struct {
	ID          uuid.UUID          `json:"id"`
	ProductID   string             `json:"product_id"`
	ProductName string             `json:"product_name"`
	BrandName   *string            `json:"brand_name,omitempty"`
	UPCSku      *string            `json:"upc_sku,omitempty"`
	ServingSize *string            `json:"serving_size,omitempty"`
	Quantity    int                `json:"quantity"`
	Source      enums.IntakeSource `json:"source"`
	AddedAt     time.Time          `json:"added_at"`
}

// AddItemDTO holds the data required to upsert a pantry row.
type AddItemDTO struct {
	UserID      uuid.UUID
	ProductID   string
	ProductName string
	BrandName   *string
	UPCSku      *string
	ServingSize *string
	Quantity    int
}

func fromPantryModel(m *models.PantryItem) ItemDTO {
	return ItemDTO{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		BrandName:   m.BrandName,
		UPCSku:      m.UPCSku,
		ServingSize: m.ServingSize,
		Quantity:    m.Quantity,
		Source:      enums.IntakeSourcePantry,
		AddedAt:     m.AddedAt,
	}
}

func fromCustomModel(m *models.CustomSupplement) ItemDTO {
	return ItemDTO{
		ID:          m.ID,
		ProductID:   m.ID.String(),
		ProductName: m.ProductName,
		BrandName:   m.BrandName,
		UPCSku:      m.UPCSku,
		ServingSize: m.ServingSize,
		Quantity:    1,
		Source:      enums.IntakeSourceCustom,
		AddedAt:     m.AddedAt,
	}
}

func (a AddItemDTO) toModel() *models.PantryItem {
	quantity := a.Quantity
	if quantity < 1 {
		quantity = 1
	}
	return &models.PantryItem{
		ID:          uuid.New(),
		UserID:      a.UserID,
		ProductID:   a.ProductID,
		ProductName: a.ProductName,
		BrandName:   a.BrandName,
		UPCSku:      a.UPCSku,
		ServingSize: a.ServingSize,
		Quantity:    quantity,
		AddedAt:     time.Now().UTC(),
	}
}
