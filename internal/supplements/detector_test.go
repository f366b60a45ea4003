package supplements

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lcervantes/pantrylog-backend/internal/catalog"
)

func setupDetectorTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	customSupplements := `
CREATE TABLE IF NOT EXISTS custom_supplements (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  brand_name TEXT,
  upc_sku TEXT,
  serving_size TEXT,
  product_type TEXT,
  description TEXT,
  added_at DATETIME
);`
	require.NoError(t, db.Exec(customSupplements).Error)
	return db
}

func seedCatalog(t *testing.T, products ...catalog.Product) *catalog.Store {
	t.Helper()
	dir := t.TempDir()
	data, err := json.Marshal(products)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), data, 0o644))
	return catalog.NewStore(dir)
}

func seedCustomSupplement(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	custom := CreateCustomSupplementDTO{UserID: userID, ProductName: name}.ToModel()
	custom.AddedAt = time.Now().UTC()
	require.NoError(t, db.Create(custom).Error)
	return custom.ID
}

func TestFindDuplicatesCatalogUPCMatch(t *testing.T) {
	db := setupDetectorTestDB(t)
	store := seedCatalog(t, catalog.Product{
		ID:       "dsld-1",
		FullName: "Totally Different Name",
		UPCSku:   "012345",
	})

	detector := NewDetector(db, store)
	result, err := detector.FindDuplicates(context.Background(), uuid.New(), DuplicateCandidate{
		ProductName: "Vitamin C 1000mg",
		UPCSku:      "012345",
	})
	require.NoError(t, err)

	assert.True(t, result.HasDuplicates)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, MatchSourceCatalog, result.Duplicates[0].Source)
	assert.Equal(t, "dsld-1", result.Duplicates[0].ProductID)
	assert.Equal(t, "Found 1 potential duplicate(s)", result.Message)
}

func TestFindDuplicatesCatalogNameSimilarity(t *testing.T) {
	db := setupDetectorTestDB(t)
	store := seedCatalog(t, catalog.Product{
		ID:       "dsld-2",
		FullName: "Vitamin D3 5000IU",
	})

	detector := NewDetector(db, store)
	result, err := detector.FindDuplicates(context.Background(), uuid.New(), DuplicateCandidate{
		ProductName: "Vitamin D3 5000 IU",
	})
	require.NoError(t, err)

	assert.True(t, result.HasDuplicates)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, MatchSourceCatalog, result.Duplicates[0].Source)
}

func TestFindDuplicatesBrandMismatchNotFlagged(t *testing.T) {
	db := setupDetectorTestDB(t)
	store := seedCatalog(t, catalog.Product{
		ID:        "dsld-3",
		FullName:  "Vitamin D3",
		BrandName: "BrandB",
	})

	detector := NewDetector(db, store)
	result, err := detector.FindDuplicates(context.Background(), uuid.New(), DuplicateCandidate{
		ProductName: "Vitamin D3",
		BrandName:   "BrandA",
	})
	require.NoError(t, err)

	assert.False(t, result.HasDuplicates)
	assert.Empty(t, result.Duplicates)
	assert.Equal(t, "No duplicates found", result.Message)
}

func TestFindDuplicatesSpansCustomSupplements(t *testing.T) {
	db := setupDetectorTestDB(t)
	store := seedCatalog(t)
	userID := uuid.New()
	customID := seedCustomSupplement(t, db, userID, "Homemade Electrolyte Mix")

	detector := NewDetector(db, store)
	result, err := detector.FindDuplicates(context.Background(), userID, DuplicateCandidate{
		ProductName: "Homemade Electrolyte Mixx",
	})
	require.NoError(t, err)

	assert.True(t, result.HasDuplicates)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, MatchSourceCustom, result.Duplicates[0].Source)
	assert.Equal(t, customID.String(), result.Duplicates[0].ProductID)
}

func TestFindDuplicatesMergesCatalogAndCustom(t *testing.T) {
	db := setupDetectorTestDB(t)
	store := seedCatalog(t, catalog.Product{
		ID:       "dsld-4",
		FullName: "Vitamin D3 5000 IU",
	})
	userID := uuid.New()
	seedCustomSupplement(t, db, userID, "Vitamin D3 5000IU")

	detector := NewDetector(db, store)
	result, err := detector.FindDuplicates(context.Background(), userID, DuplicateCandidate{
		ProductName: "Vitamin D3 5000 IU",
	})
	require.NoError(t, err)

	require.Len(t, result.Duplicates, 2)
	assert.Equal(t, MatchSourceCatalog, result.Duplicates[0].Source)
	assert.Equal(t, MatchSourceCustom, result.Duplicates[1].Source)
	assert.Equal(t, "Found 2 potential duplicate(s)", result.Message)
}

func TestFindDuplicatesCustomScopedToUser(t *testing.T) {
	db := setupDetectorTestDB(t)
	store := seedCatalog(t)
	seedCustomSupplement(t, db, uuid.New(), "Vitamin D3 5000 IU")

	detector := NewDetector(db, store)
	result, err := detector.FindDuplicates(context.Background(), uuid.New(), DuplicateCandidate{
		ProductName: "Vitamin D3 5000 IU",
	})
	require.NoError(t, err)

	assert.False(t, result.HasDuplicates)
}

func TestFindDuplicatesRequiresName(t *testing.T) {
	db := setupDetectorTestDB(t)
	detector := NewDetector(db, seedCatalog(t))

	_, err := detector.FindDuplicates(context.Background(), uuid.New(), DuplicateCandidate{})
	require.Error(t, err)
}
