package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

func setupStravaTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	connections := `
CREATE TABLE IF NOT EXISTS strava_connections (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  strava_athlete_id INTEGER NOT NULL UNIQUE,
  access_token TEXT NOT NULL,
  refresh_token TEXT NOT NULL,
  expires_at DATETIME NOT NULL,
  athlete_data TEXT,
  connected_at DATETIME,
  last_sync_at DATETIME
);`
	activities := `
CREATE TABLE IF NOT EXISTS activities (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  strava_activity_id INTEGER NOT NULL UNIQUE,
  activity_type TEXT NOT NULL,
  activity_name TEXT,
  distance REAL,
  distance_unit TEXT NOT NULL DEFAULT 'meters',
  duration_seconds INTEGER,
  start_date DATETIME NOT NULL,
  average_speed REAL,
  max_speed REAL,
  average_heart_rate REAL,
  max_heart_rate REAL,
  average_power REAL,
  max_power REAL,
  calories INTEGER,
  elevation_gain REAL,
  description TEXT,
  raw_data TEXT,
  synced_at DATETIME
);`
	require.NoError(t, db.Exec(connections).Error)
	require.NoError(t, db.Exec(activities).Error)
	return db
}

type stubProvider struct {
	authorizeURL string
	exchanged    *TokenSet
	refreshed    *TokenSet
	refreshErr   error
	activities   []Activity
	listErr      error

	refreshCalls int
}

func (s *stubProvider) AuthorizeURL(state string) string {
	return s.authorizeURL + "&state=" + state
}

func (s *stubProvider) ExchangeCode(ctx context.Context, code string) (*TokenSet, error) {
	if s.exchanged == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "exchange failed")
	}
	return s.exchanged, nil
}

func (s *stubProvider) RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error) {
	s.refreshCalls++
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return s.refreshed, nil
}

func (s *stubProvider) ListActivities(ctx context.Context, accessToken string) ([]Activity, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.activities, nil
}

func newStravaService(t *testing.T, db *gorm.DB, provider *stubProvider) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Client: provider,
		Repo:   NewRepository(db),
	})
	require.NoError(t, err)
	return svc
}

func seedConnection(t *testing.T, db *gorm.DB, userID uuid.UUID, expiresAt time.Time) *models.StravaConnection {
	t.Helper()
	conn := &models.StravaConnection{
		ID:           uuid.New(),
		UserID:       userID,
		AthleteID:    42,
		AccessToken:  "access-old",
		RefreshToken: "refresh-old",
		ExpiresAt:    expiresAt,
		AthleteData:  `{"id":42}`,
		ConnectedAt:  time.Now().UTC(),
		LastSyncAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(conn).Error)
	return conn
}

func floatPtr(f float64) *float64 { return &f }
func int64Ptr(i int64) *int64     { return &i }

func rideActivity(id int64) Activity {
	return Activity{
		ID:         id,
		Name:       "Morning Ride",
		Type:       "Ride",
		Distance:   floatPtr(25000),
		MovingTime: int64Ptr(3600),
		StartDate:  "2026-08-20T06:30:00Z",
	}
}

func TestCallbackUpsertsConnection(t *testing.T) {
	db := setupStravaTestDB(t)
	userID := uuid.New()
	provider := &stubProvider{
		exchanged: &TokenSet{
			AccessToken:  "access-new",
			RefreshToken: "refresh-new",
			ExpiresAt:    time.Now().Add(6 * time.Hour).Unix(),
			Athlete:      json.RawMessage(`{"id":42,"username":"rider"}`),
		},
	}
	svc := newStravaService(t, db, provider)

	require.NoError(t, svc.HandleCallback(context.Background(), "auth-code", userID.String()))
	// A second callback for the same athlete must not duplicate the row.
	require.NoError(t, svc.HandleCallback(context.Background(), "auth-code", userID.String()))

	var count int64
	require.NoError(t, db.Model(&models.StravaConnection{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	status, err := svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.False(t, status.Expired)
	assert.Equal(t, int64(42), status.AthleteID)
}

func TestCallbackRejectsBadState(t *testing.T) {
	db := setupStravaTestDB(t)
	svc := newStravaService(t, db, &stubProvider{})

	err := svc.HandleCallback(context.Background(), "code", "not-a-user-id")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestStatusDisconnected(t *testing.T) {
	db := setupStravaTestDB(t)
	svc := newStravaService(t, db, &stubProvider{})

	status, err := svc.Status(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestSyncIdempotentUpsert(t *testing.T) {
	db := setupStravaTestDB(t)
	userID := uuid.New()
	seedConnection(t, db, userID, time.Now().Add(time.Hour))

	provider := &stubProvider{activities: []Activity{rideActivity(1001), rideActivity(1002)}}
	svc := newStravaService(t, db, provider)

	first, err := svc.Sync(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, first.SyncedCount)
	assert.Equal(t, 2, first.TotalActivities)

	second, err := svc.Sync(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, second.SyncedCount)
	assert.Equal(t, 2, second.TotalActivities)

	var count int64
	require.NoError(t, db.Model(&models.Activity{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 0, provider.refreshCalls)
}

func TestSyncRefreshesExpiredToken(t *testing.T) {
	db := setupStravaTestDB(t)
	userID := uuid.New()
	conn := seedConnection(t, db, userID, time.Now().Add(-time.Hour))

	provider := &stubProvider{
		refreshed: &TokenSet{
			AccessToken:  "access-fresh",
			RefreshToken: "refresh-fresh",
			ExpiresAt:    time.Now().Add(6 * time.Hour).Unix(),
		},
		activities: []Activity{rideActivity(2001)},
	}
	svc := newStravaService(t, db, provider)

	result, err := svc.Sync(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SyncedCount)
	assert.Equal(t, 1, provider.refreshCalls)

	var stored models.StravaConnection
	require.NoError(t, db.First(&stored, "id = ?", conn.ID).Error)
	assert.Equal(t, "access-fresh", stored.AccessToken)
	assert.Equal(t, "refresh-fresh", stored.RefreshToken)
}

func TestSyncRefreshFailureKeepsConnection(t *testing.T) {
	db := setupStravaTestDB(t)
	userID := uuid.New()
	seedConnection(t, db, userID, time.Now().Add(-time.Hour))

	provider := &stubProvider{
		refreshErr: pkgerrors.New(pkgerrors.CodeDependency, "refresh rejected"),
	}
	svc := newStravaService(t, db, provider)

	_, err := svc.Sync(context.Background(), userID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.StravaConnection{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSyncWithoutConnectionIsNotFound(t *testing.T) {
	db := setupStravaTestDB(t)
	svc := newStravaService(t, db, &stubProvider{})

	_, err := svc.Sync(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDisconnect(t *testing.T) {
	db := setupStravaTestDB(t)
	userID := uuid.New()
	seedConnection(t, db, userID, time.Now().Add(time.Hour))
	svc := newStravaService(t, db, &stubProvider{})

	require.NoError(t, svc.Disconnect(context.Background(), userID))

	err := svc.Disconnect(context.Background(), userID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
