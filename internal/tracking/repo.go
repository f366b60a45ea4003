package tracking

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
)

// Repository exposes intake-log persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a tracking repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new intake log entry and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateEntryDTO) (*models.IntakeLog, error) {
	entry := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByUser returns the user's entries, optionally bounded by the filter's
// inclusive calendar-date range, most recent first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.IntakeLog, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !filter.StartDate.IsZero() {
		query = query.Where("taken_at >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		// The end bound is inclusive of the whole calendar day.
		query = query.Where("taken_at < ?", filter.EndDate.AddDate(0, 0, 1))
	}

	var entries []models.IntakeLog
	if err := query.Order("taken_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteByID removes the user's entry, reporting rows affected. The user
// scope lives in the WHERE clause so one statement enforces ownership.
func (r *Repository) DeleteByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.IntakeLog{})
	return result.RowsAffected, result.Error
}
