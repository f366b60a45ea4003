package supplements

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
)

// Repository exposes custom-supplement persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a supplements repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new custom supplement and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateCustomSupplementDTO) (*models.CustomSupplement, error) {
	supplement := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(supplement).Error; err != nil {
		return nil, err
	}
	return supplement, nil
}

// ListByUser returns the user's custom supplements, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CustomSupplement, error) {
	var supplements []models.CustomSupplement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&supplements).Error
	if err != nil {
		return nil, err
	}
	return supplements, nil
}

// DeleteByID removes the user's custom supplement, reporting rows affected.
func (r *Repository) DeleteByID(ctx context.Context, userID uuid.UUID, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CustomSupplement{})
	return result.RowsAffected, result.Error
}
