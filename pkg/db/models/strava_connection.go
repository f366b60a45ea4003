package models

import (
	"time"

	"github.com/google/uuid"
)

// StravaConnection links a user to their authorized Strava athlete account.
// The athlete id is unique: one connection per external account.
type StravaConnection struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	AthleteID    int64     `gorm:"column:strava_athlete_id;not null;uniqueIndex"`
	AccessToken  string    `gorm:"column:access_token;not null"`
	RefreshToken string    `gorm:"column:refresh_token;not null"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null"`
	AthleteData  string    `gorm:"column:athlete_data;type:text"`
	ConnectedAt  time.Time `gorm:"column:connected_at;autoCreateTime"`
	LastSyncAt   time.Time `gorm:"column:last_sync_at;autoCreateTime"`
}

// Expired reports whether the access token is past its expiry and must be
// refreshed before use.
func (c StravaConnection) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}
