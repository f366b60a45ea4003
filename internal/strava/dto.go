package strava

import (
	"encoding/json"
	"time"
)

// StatusDTO reports the connection state for the authenticated user.
type StatusDTO struct {
	Connected   bool            `json:"connected"`
	Expired     bool            `json:"expired,omitempty"`
	AthleteID   int64           `json:"athlete_id,omitempty"`
	Athlete     json.RawMessage `json:"athlete,omitempty"`
	ConnectedAt *time.Time      `json:"connected_at,omitempty"`
	LastSyncAt  *time.Time      `json:"last_sync_at,omitempty"`
}

// SyncResult summarizes one sync run: rows actually written versus the
// total the provider returned.
type SyncResult struct {
	SyncedCount     int `json:"synced_count"`
	TotalActivities int `json:"total_activities"`
}

// ConnectDTO carries the provider authorization redirect.
type ConnectDTO struct {
	AuthorizeURL string `json:"authorize_url"`
}
