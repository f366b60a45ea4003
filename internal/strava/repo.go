package strava

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
)

// Repository exposes connection and synced-activity persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a strava repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertConnection inserts a connection or, on an athlete-id conflict,
// replaces the credentials, owner, and athlete snapshot.
func (r *Repository) UpsertConnection(ctx context.Context, conn *models.StravaConnection) (*models.StravaConnection, error) {
	if conn.ID == uuid.Nil {
		conn.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "strava_athlete_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id", "access_token", "refresh_token", "expires_at", "athlete_data", "connected_at",
			}),
		}).
		Create(conn).Error
	if err != nil {
		return nil, err
	}

	var stored models.StravaConnection
	err = r.db.WithContext(ctx).
		Where("strava_athlete_id = ?", conn.AthleteID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindConnectionByUser loads the user's connection, if any.
func (r *Repository) FindConnectionByUser(ctx context.Context, userID uuid.UUID) (*models.StravaConnection, error) {
	var conn models.StravaConnection
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

// UpdateTokens stores a refreshed credential set on the connection.
func (r *Repository) UpdateTokens(ctx context.Context, id uuid.UUID, accessToken, refreshToken string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.StravaConnection{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"expires_at":    expiresAt,
		}).Error
}

// UpdateLastSync stamps the connection with the completed sync time.
func (r *Repository) UpdateLastSync(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.StravaConnection{}).
		Where("id = ?", id).
		UpdateColumn("last_sync_at", at).Error
}

// DeleteConnectionByUser removes the user's connection, reporting rows affected.
func (r *Repository) DeleteConnectionByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.StravaConnection{})
	return result.RowsAffected, result.Error
}

// UpsertActivity writes one synced activity, keyed by the external activity
// id. It reports whether a new row was created so callers can count real
// inserts across repeated syncs.
func (r *Repository) UpsertActivity(ctx context.Context, activity *models.Activity) (bool, error) {
	var existing models.Activity
	err := r.db.WithContext(ctx).
		Where("strava_activity_id = ?", activity.StravaActivityID).
		First(&existing).Error
	switch {
	case err == nil:
		activity.ID = existing.ID
		updateErr := r.db.WithContext(ctx).
			Model(&models.Activity{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"activity_type":      activity.ActivityType,
				"activity_name":      activity.ActivityName,
				"distance":           activity.Distance,
				"duration_seconds":   activity.DurationSeconds,
				"start_date":         activity.StartDate,
				"average_speed":      activity.AverageSpeed,
				"max_speed":          activity.MaxSpeed,
				"average_heart_rate": activity.AverageHeartRate,
				"max_heart_rate":     activity.MaxHeartRate,
				"average_power":      activity.AveragePower,
				"max_power":          activity.MaxPower,
				"calories":           activity.Calories,
				"elevation_gain":     activity.ElevationGain,
				"description":        activity.Description,
				"raw_data":           activity.RawData,
			}).Error
		return false, updateErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		if activity.ID == uuid.Nil {
			activity.ID = uuid.New()
		}
		return true, r.db.WithContext(ctx).Create(activity).Error
	default:
		return false, err
	}
}
