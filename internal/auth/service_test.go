package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lcervantes/pantrylog-backend/internal/users"
	pkgAuth "github.com/lcervantes/pantrylog-backend/pkg/auth"
	"github.com/lcervantes/pantrylog-backend/pkg/auth/session"
	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	dbtypes "github.com/lcervantes/pantrylog-backend/pkg/db/types"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
	"github.com/lcervantes/pantrylog-backend/pkg/security"
)

func newLoginService(t *testing.T, repo userRepository, sessions sessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)
	return svc
}

func createLoginUser(t *testing.T, conn *gorm.DB, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.New(),
		Username:     "login_" + uuid.NewString()[:8],
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Jess",
		LastName:     "Ortiz",
		DateOfBirth:  "1994-03-12",
		Sports:       dbtypes.StringArray{"running"},
		Allergies:    dbtypes.StringArray{},
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func TestLoginSuccess(t *testing.T) {
	conn := setupAuthTestDB(t)
	user := createLoginUser(t, conn, "jess@example.com", "correct horse battery")
	sessions := &stubSessionManager{}
	svc := newLoginService(t, users.NewRepository(conn), sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Jess@Example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotNil(t, resp.User.LastLoginAt)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginBadPassword(t *testing.T) {
	conn := setupAuthTestDB(t)
	createLoginUser(t, conn, "jess@example.com", "correct horse battery")
	svc := newLoginService(t, users.NewRepository(conn), &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jess@example.com",
		Password: "wrong password",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginUnknownEmail(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newLoginService(t, users.NewRepository(conn), &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestRefreshRotatesSession(t *testing.T) {
	conn := setupAuthTestDB(t)
	sessions := &stubSessionManager{}
	svc := newLoginService(t, users.NewRepository(conn), sessions)

	userID := uuid.New()
	accessToken, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		JTI:    "old-access-id",
	})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "refresh-old-access-id",
	})
	require.NoError(t, err)
	assert.Equal(t, "refresh-rotated-old-access-id", resp.RefreshToken)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "rotated-old-access-id", claims.ID)
}

func TestRefreshRejectsInvalidRefreshToken(t *testing.T) {
	conn := setupAuthTestDB(t)
	sessions := &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken}
	svc := newLoginService(t, users.NewRepository(conn), sessions)

	accessToken, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    "old-access-id",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "tampered",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestRefreshRejectsTokenSignedWithWrongSecret(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newLoginService(t, users.NewRepository(conn), &stubSessionManager{})

	otherCfg := testJWTConfig()
	otherCfg.Secret = "another-secret"
	accessToken, err := pkgAuth.MintAccessToken(otherCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "refresh",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLogout(t *testing.T) {
	conn := setupAuthTestDB(t)
	sessions := &stubSessionManager{}
	svc := newLoginService(t, users.NewRepository(conn), sessions)

	require.NoError(t, svc.Logout(context.Background(), "access-1"))
	assert.Equal(t, []string{"access-1"}, sessions.revoked)

	err := svc.Logout(context.Background(), "  ")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}
