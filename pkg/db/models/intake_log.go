package models

import (
	"time"

	"github.com/lcervantes/pantrylog-backend/pkg/enums"
	"github.com/google/uuid"
)

// IntakeLog records a single dose of a supplement taken at a point in time.
// The supplement reference may point at a catalog, pantry, or custom id; the
// source tag disambiguates. Rows are append-only apart from owner deletes.
type IntakeLog struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index"`
	SupplementID   string             `gorm:"column:supplement_id;type:text;not null"`
	SupplementName string             `gorm:"column:supplement_name;not null"`
	BrandName      *string            `gorm:"column:brand_name"`
	Dosage         string             `gorm:"column:dosage;not null"`
	Unit           enums.DosageUnit   `gorm:"column:unit;type:text;not null"`
	TakenAt        time.Time          `gorm:"column:taken_at;not null;index"`
	Notes          *string            `gorm:"column:notes"`
	Source         enums.IntakeSource `gorm:"column:source;type:text;not null;default:pantry"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
}
