package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a synced external workout. strava_activity_id is unique so
// repeated syncs upsert instead of duplicating rows. RawData keeps the full
// provider payload for forward compatibility.
type Activity struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	StravaActivityID int64     `gorm:"column:strava_activity_id;not null;uniqueIndex"`
	ActivityType     string    `gorm:"column:activity_type;not null;index"`
	ActivityName     *string   `gorm:"column:activity_name"`
	Distance         *float64  `gorm:"column:distance"`
	DistanceUnit     string    `gorm:"column:distance_unit;not null;default:meters"`
	DurationSeconds  *int64    `gorm:"column:duration_seconds"`
	StartDate        time.Time `gorm:"column:start_date;not null;index"`
	AverageSpeed     *float64  `gorm:"column:average_speed"`
	MaxSpeed         *float64  `gorm:"column:max_speed"`
	AverageHeartRate *float64  `gorm:"column:average_heart_rate"`
	MaxHeartRate     *float64  `gorm:"column:max_heart_rate"`
	AveragePower     *float64  `gorm:"column:average_power"`
	MaxPower         *float64  `gorm:"column:max_power"`
	Calories         *int      `gorm:"column:calories"`
	ElevationGain    *float64  `gorm:"column:elevation_gain"`
	Description      *string   `gorm:"column:description"`
	RawData          string    `gorm:"column:raw_data;type:text"`
	SyncedAt         time.Time `gorm:"column:synced_at;autoUpdateTime"`
}
