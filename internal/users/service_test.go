package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  date_of_birth TEXT NOT NULL,
  height TEXT,
  weight TEXT,
  sports TEXT NOT NULL,
  allergies TEXT NOT NULL,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(usersTable).Error)
	return db
}

func newUsersService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: NewRepository(db)})
	require.NoError(t, err)
	return svc
}

func seedProfileUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	repo := NewRepository(db)
	user, err := repo.Create(context.Background(), CreateUserDTO{
		Username:     "runner_42",
		Email:        "runner@example.com",
		PasswordHash: "$argon2id$v=19$m=8,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA",
		FirstName:    "Jess",
		LastName:     "Ortiz",
		DateOfBirth:  "1994-03-12",
		Sports:       []string{"running"},
		Allergies:    []string{"peanuts"},
	})
	require.NoError(t, err)
	return user.ID
}

func TestGetProfile(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersService(t, db)
	userID := seedProfileUser(t, db)

	profile, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "runner_42", profile.Username)
	assert.Equal(t, []string{"peanuts"}, profile.Allergies)
}

func TestGetProfileMissingUser(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersService(t, db)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateProfilePartial(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersService(t, db)
	userID := seedProfileUser(t, db)

	weight := "72kg"
	updated, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileRequest{
		Weight: &weight,
		Sports: []string{"running", "swimming"},
	})
	require.NoError(t, err)

	// Untouched fields survive.
	assert.Equal(t, "Jess", updated.FirstName)
	assert.Equal(t, "Ortiz", updated.LastName)
	require.NotNil(t, updated.Weight)
	assert.Equal(t, "72kg", *updated.Weight)
	assert.Equal(t, []string{"running", "swimming"}, updated.Sports)
}

func TestUpdateProfileValidation(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersService(t, db)
	userID := seedProfileUser(t, db)

	empty := "  "
	_, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileRequest{FirstName: &empty})
	require.Error(t, err)

	badDate := "12/03/1994"
	_, err = svc.UpdateProfile(context.Background(), userID, UpdateProfileRequest{DateOfBirth: &badDate})
	require.Error(t, err)

	_, err = svc.UpdateProfile(context.Background(), userID, UpdateProfileRequest{Sports: []string{}})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateProfileMissingUser(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersService(t, db)

	name := "Sam"
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileRequest{FirstName: &name})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
