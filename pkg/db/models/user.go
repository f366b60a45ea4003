package models

import (
	"time"

	dbtypes "github.com/lcervantes/pantrylog-backend/pkg/db/types"
	"github.com/google/uuid"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Username     string              `gorm:"type:text;not null;uniqueIndex"`
	Email        string              `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string              `gorm:"column:password_hash;not null"`
	FirstName    string              `gorm:"column:first_name;not null"`
	LastName     string              `gorm:"column:last_name;not null"`
	DateOfBirth  string              `gorm:"column:date_of_birth;not null"`
	Height       *string             `gorm:"column:height"`
	Weight       *string             `gorm:"column:weight"`
	Sports       dbtypes.StringArray `gorm:"type:jsonb;not null"`
	Allergies    dbtypes.StringArray `gorm:"type:jsonb;not null"`
	LastLoginAt  *time.Time          `gorm:"column:last_login_at"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
