package tracking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lcervantes/pantrylog-backend/pkg/enums"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

func setupTrackingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	intakeLogs := `
CREATE TABLE IF NOT EXISTS intake_logs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  supplement_id TEXT NOT NULL,
  supplement_name TEXT NOT NULL,
  brand_name TEXT,
  dosage TEXT NOT NULL,
  unit TEXT NOT NULL,
  taken_at DATETIME NOT NULL,
  notes TEXT,
  source TEXT NOT NULL DEFAULT 'pantry',
  created_at DATETIME
);`
	require.NoError(t, db.Exec(intakeLogs).Error)
	return db
}

func newTrackingService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: NewRepository(db)})
	require.NoError(t, err)
	return svc
}

func logEntry(t *testing.T, svc Service, userID uuid.UUID, name, takenAt string) *EntryDTO {
	t.Helper()
	entry, err := svc.Log(context.Background(), userID, LogEntryRequest{
		SupplementID:   "dsld-1",
		SupplementName: name,
		Dosage:         "500",
		Unit:           "mg",
		TakenAt:        takenAt,
	})
	require.NoError(t, err)
	return entry
}

func TestIntakeLogDefaultsToPantrySource(t *testing.T) {
	db := setupTrackingTestDB(t)
	svc := newTrackingService(t, db)

	entry := logEntry(t, svc, uuid.New(), "Vitamin C", "2026-08-01")
	assert.Equal(t, enums.IntakeSourcePantry, entry.Source)
	assert.Equal(t, enums.DosageUnitMG, entry.Unit)
}

func TestIntakeLogRejectsUnknownUnitAndSource(t *testing.T) {
	db := setupTrackingTestDB(t)
	svc := newTrackingService(t, db)
	userID := uuid.New()

	_, err := svc.Log(context.Background(), userID, LogEntryRequest{
		SupplementID:   "dsld-1",
		SupplementName: "Vitamin C",
		Dosage:         "500",
		Unit:           "liters",
		TakenAt:        "2026-08-01",
	})
	require.Error(t, err)

	_, err = svc.Log(context.Background(), userID, LogEntryRequest{
		SupplementID:   "dsld-1",
		SupplementName: "Vitamin C",
		Dosage:         "500",
		Unit:           "mg",
		TakenAt:        "2026-08-01",
		Source:         "catalog",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestIntakeListInclusiveDateRange(t *testing.T) {
	db := setupTrackingTestDB(t)
	svc := newTrackingService(t, db)
	userID := uuid.New()

	logEntry(t, svc, userID, "Before", "2026-07-31T23:00:00Z")
	logEntry(t, svc, userID, "StartEdge", "2026-08-01T00:30:00Z")
	logEntry(t, svc, userID, "Middle", "2026-08-05T12:00:00Z")
	logEntry(t, svc, userID, "EndEdge", "2026-08-10T23:30:00Z")
	logEntry(t, svc, userID, "After", "2026-08-11T00:10:00Z")

	start, _ := time.Parse("2006-01-02", "2026-08-01")
	end, _ := time.Parse("2006-01-02", "2026-08-10")
	entries, err := svc.List(context.Background(), userID, ListFilter{
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	require.Len(t, entries, 3)
	names := []string{entries[0].SupplementName, entries[1].SupplementName, entries[2].SupplementName}
	assert.ElementsMatch(t, []string{"StartEdge", "Middle", "EndEdge"}, names)
	// Newest first.
	assert.Equal(t, "EndEdge", entries[0].SupplementName)
}

func TestIntakeDeleteScopedToOwner(t *testing.T) {
	db := setupTrackingTestDB(t)
	svc := newTrackingService(t, db)
	owner := uuid.New()

	entry := logEntry(t, svc, owner, "Vitamin C", "2026-08-01")

	err := svc.Delete(context.Background(), uuid.New(), entry.ID.String())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	require.NoError(t, svc.Delete(context.Background(), owner, entry.ID.String()))

	entries, err := svc.List(context.Background(), owner, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIntakeDeleteRejectsMalformedID(t *testing.T) {
	db := setupTrackingTestDB(t)
	svc := newTrackingService(t, db)

	err := svc.Delete(context.Background(), uuid.New(), "not-a-uuid")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
