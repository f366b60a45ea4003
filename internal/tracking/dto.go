package tracking

import (
	"time"

	"github.com/google/uuid"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	"github.com/lcervantes/pantrylog-backend/pkg/enums"
)

// EntryDTO is the transport shape for one intake log entry.
type EntryDTO struct {
	ID             uuid.UUID          `json:"id"`
	SupplementID   string             `json:"supplement_id"`
	SupplementName string             `json:"supplement_name"`
	BrandName      *string            `json:"brand_name,omitempty"`
	Dosage         string             `json:"dosage"`
	Unit           enums.DosageUnit   `json:"unit"`
	TakenAt        time.Time          `json:"taken_at"`
	Notes          *string            `json:"notes,omitempty"`
	Source         enums.IntakeSource `json:"source"`
	CreatedAt      time.Time          `json:"created_at"`
}

// CreateEntryDTO holds the data required to persist an intake log entry.
type CreateEntryDTO struct {
	UserID         uuid.UUID
	SupplementID   string
	SupplementName string
	BrandName      *string
	Dosage         string
	Unit           enums.DosageUnit
	TakenAt        time.Time
	Notes          *string
	Source         enums.IntakeSource
}

// ListFilter narrows a listing to entries whose taken-at calendar date falls
// within the inclusive range. Zero times leave the bound open.
type ListFilter struct {
	StartDate time.Time
	EndDate   time.Time
}

func FromModel(m *models.IntakeLog) *EntryDTO {
	if m == nil {
		return nil
	}
	return &EntryDTO{
		ID:             m.ID,
		SupplementID:   m.SupplementID,
		SupplementName: m.SupplementName,
		BrandName:      m.BrandName,
		Dosage:         m.Dosage,
		Unit:           m.Unit,
		TakenAt:        m.TakenAt,
		Notes:          m.Notes,
		Source:         m.Source,
		CreatedAt:      m.CreatedAt,
	}
}

func (c CreateEntryDTO) ToModel() *models.IntakeLog {
	return &models.IntakeLog{
		ID:             uuid.New(),
		UserID:         c.UserID,
		SupplementID:   c.SupplementID,
		SupplementName: c.SupplementName,
		BrandName:      c.BrandName,
		Dosage:         c.Dosage,
		Unit:           c.Unit,
		TakenAt:        c.TakenAt,
		Notes:          c.Notes,
		Source:         c.Source,
	}
}
