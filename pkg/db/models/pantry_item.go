package models

import (
	"time"

	"github.com/google/uuid"
)

// PantryItem is a denormalized copy of a catalog product a user tracks.
// At most one row exists per (user, catalog product); adds are upserts.
type PantryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:idx_pantry_user_product"`
	ProductID   string    `gorm:"column:product_id;type:text;not null;uniqueIndex:idx_pantry_user_product"`
	ProductName string    `gorm:"column:product_name;not null"`
	BrandName   *string   `gorm:"column:brand_name"`
	UPCSku      *string   `gorm:"column:upc_sku"`
	ServingSize *string   `gorm:"column:serving_size"`
	Quantity    int       `gorm:"column:quantity;not null;default:1"`
	AddedAt     time.Time `gorm:"column:added_at;autoCreateTime"`
}
