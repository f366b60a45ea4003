package pantry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
)

// Repository exposes pantry persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a pantry repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts the pantry row or, on a (user_id, product_id) conflict,
// replaces the denormalized metadata and quantity of the existing row.
func (r *Repository) Upsert(ctx context.Context, dto AddItemDTO) (*models.PantryItem, error) {
	item := dto.toModel()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"product_name", "brand_name", "upc_sku", "serving_size", "quantity", "added_at",
			}),
		}).
		Create(item).Error
	if err != nil {
		return nil, err
	}

	// Re-read so callers see the surviving row's id after a conflict update.
	var stored models.PantryItem
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", dto.UserID, dto.ProductID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListByUser returns the user's catalog-backed pantry rows, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error) {
	var items []models.PantryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteByProductID removes the user's pantry row, reporting rows affected.
func (r *Repository) DeleteByProductID(ctx context.Context, userID uuid.UUID, productID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.PantryItem{})
	return result.RowsAffected, result.Error
}
