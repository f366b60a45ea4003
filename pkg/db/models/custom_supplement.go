package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomSupplement is a user-authored product outside the DSLD catalog.
// Its id space is distinct from catalog product ids.
type CustomSupplement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	ProductName string    `gorm:"column:product_name;not null"`
	BrandName   *string   `gorm:"column:brand_name"`
	UPCSku      *string   `gorm:"column:upc_sku"`
	ServingSize *string   `gorm:"column:serving_size"`
	ProductType *string   `gorm:"column:product_type"`
	Description *string   `gorm:"column:description"`
	AddedAt     time.Time `gorm:"column:added_at;autoCreateTime"`
}
