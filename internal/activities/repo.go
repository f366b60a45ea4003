package activities

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	"github.com/lcervantes/pantrylog-backend/pkg/pagination"
)

// Repository exposes read access to synced activities.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an activities repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns one page of the user's activities, newest first,
// optionally narrowed to one activity type. It also reports the unpaged total.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, activityType string, page pagination.Params) ([]models.Activity, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("user_id = ?", userID)
	if activityType != "" {
		query = query.Where("activity_type = ?", activityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	normalized := page.Normalize()
	var rows []models.Activity
	err := query.
		Order("start_date DESC").
		Limit(normalized.Limit).
		Offset(normalized.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
