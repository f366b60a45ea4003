package tracking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	"github.com/lcervantes/pantrylog-backend/pkg/enums"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

// Service defines the behavior needed by the tracking controller.
type Service interface {
	Log(ctx context.Context, userID uuid.UUID, req LogEntryRequest) (*EntryDTO, error)
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]EntryDTO, error)
	Delete(ctx context.Context, userID uuid.UUID, entryID string) error
}

// LogEntryRequest captures the payload for recording an intake event.
type LogEntryRequest struct {
	SupplementID   string  `json:"supplement_id" validate:"required"`
	SupplementName string  `json:"supplement_name" validate:"required"`
	BrandName      *string `json:"brand_name,omitempty"`
	Dosage         string  `json:"dosage" validate:"required"`
	Unit           string  `json:"unit" validate:"required"`
	TakenAt        string  `json:"taken_at" validate:"required"`
	Notes          *string `json:"notes,omitempty"`
	Source         string  `json:"source,omitempty"`
}

type entryRepository interface {
	Create(ctx context.Context, dto CreateEntryDTO) (*models.IntakeLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.IntakeLog, error)
	DeleteByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (int64, error)
}

// ServiceParams bundles the dependencies required to build a tracking service.
type ServiceParams struct {
	Repo entryRepository
}

type service struct {
	repo entryRepository
}

// NewService constructs a tracking service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("tracking repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Log(ctx context.Context, userID uuid.UUID, req LogEntryRequest) (*EntryDTO, error) {
	name := strings.TrimSpace(req.SupplementName)
	dosage := strings.TrimSpace(req.Dosage)
	if name == "" || dosage == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplement_name and dosage are required")
	}

	unit, err := enums.ParseDosageUnit(req.Unit)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit must be one of mg, g, mcg, IU, capsule, tablet, serving")
	}

	takenAt, err := parseTakenAt(req.TakenAt)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "taken_at must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}

	source := enums.IntakeSourcePantry
	if strings.TrimSpace(req.Source) != "" {
		source, err = enums.ParseIntakeSource(req.Source)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "source must be pantry or custom")
		}
	}

	entry, err := s.repo.Create(ctx, CreateEntryDTO{
		UserID:         userID,
		SupplementID:   strings.TrimSpace(req.SupplementID),
		SupplementName: name,
		BrandName:      req.BrandName,
		Dosage:         dosage,
		Unit:           unit,
		TakenAt:        takenAt,
		Notes:          req.Notes,
		Source:         source,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create intake entry")
	}
	return FromModel(entry), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]EntryDTO, error) {
	entries, err := s.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list intake entries")
	}
	out := make([]EntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, *FromModel(&entries[i]))
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, userID uuid.UUID, entryID string) error {
	id, err := uuid.Parse(strings.TrimSpace(entryID))
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "entry id must be a UUID")
	}
	affected, err := s.repo.DeleteByID(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete intake entry")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
	}
	return nil
}

func parseTakenAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
