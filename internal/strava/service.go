package strava

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
	"github.com/lcervantes/pantrylog-backend/pkg/logger"
)

// Service defines the connection lifecycle needed by the strava controller.
type Service interface {
	ConnectURL(userID uuid.UUID) ConnectDTO
	HandleCallback(ctx context.Context, code, state string) error
	Status(ctx context.Context, userID uuid.UUID) (*StatusDTO, error)
	Sync(ctx context.Context, userID uuid.UUID) (*SyncResult, error)
	Disconnect(ctx context.Context, userID uuid.UUID) error
}

type providerClient interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*TokenSet, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error)
	ListActivities(ctx context.Context, accessToken string) ([]Activity, error)
}

type connectionRepository interface {
	UpsertConnection(ctx context.Context, conn *models.StravaConnection) (*models.StravaConnection, error)
	FindConnectionByUser(ctx context.Context, userID uuid.UUID) (*models.StravaConnection, error)
	UpdateTokens(ctx context.Context, id uuid.UUID, accessToken, refreshToken string, expiresAt time.Time) error
	UpdateLastSync(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteConnectionByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	UpsertActivity(ctx context.Context, activity *models.Activity) (bool, error)
}

// ServiceParams bundles the dependencies required to build a strava service.
type ServiceParams struct {
	Client providerClient
	Repo   connectionRepository
	Logger *logger.Logger
}

type service struct {
	client providerClient
	repo   connectionRepository
	logg   *logger.Logger
}

// NewService constructs a strava service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("strava client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("strava repository is required")
	}
	return &service{
		client: params.Client,
		repo:   params.Repo,
		logg:   params.Logger,
	}, nil
}

// ConnectURL produces the authorization redirect, carrying the user id as
// the round-tripped state.
func (s *service) ConnectURL(userID uuid.UUID) ConnectDTO {
	return ConnectDTO{AuthorizeURL: s.client.AuthorizeURL(userID.String())}
}

// HandleCallback exchanges the authorization code and upserts the
// connection for the user named by the state parameter.
func (s *service) HandleCallback(ctx context.Context, code, state string) error {
	userID, err := uuid.Parse(strings.TrimSpace(state))
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "state must carry a user id")
	}
	if strings.TrimSpace(code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}

	tokens, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}
	athleteID, err := tokens.AthleteID()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read athlete profile")
	}

	now := time.Now().UTC()
	_, err = s.repo.UpsertConnection(ctx, &models.StravaConnection{
		UserID:       userID,
		AthleteID:    athleteID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.Expiry(),
		AthleteData:  string(tokens.Athlete),
		ConnectedAt:  now,
		LastSyncAt:   now,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store connection")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"user_id":    userID.String(),
			"athlete_id": athleteID,
		}), "strava connection established")
	}
	return nil
}

func (s *service) Status(ctx context.Context, userID uuid.UUID) (*StatusDTO, error) {
	conn, err := s.repo.FindConnectionByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &StatusDTO{Connected: false}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load connection")
	}

	connectedAt := conn.ConnectedAt
	lastSyncAt := conn.LastSyncAt
	return &StatusDTO{
		Connected:   true,
		Expired:     conn.Expired(time.Now().UTC()),
		AthleteID:   conn.AthleteID,
		Athlete:     []byte(conn.AthleteData),
		ConnectedAt: &connectedAt,
		LastSyncAt:  &lastSyncAt,
	}, nil
}

// Sync refreshes an expired credential before use, fetches the activity
// list, and upserts each row by external activity id.
func (s *service) Sync(ctx context.Context, userID uuid.UUID) (*SyncResult, error) {
	conn, err := s.repo.FindConnectionByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no strava connection")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load connection")
	}

	accessToken := conn.AccessToken
	if conn.Expired(time.Now().UTC()) {
		// Refresh failure keeps the connection; the caller sees the error.
		tokens, err := s.client.RefreshToken(ctx, conn.RefreshToken)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdateTokens(ctx, conn.ID, tokens.AccessToken, tokens.RefreshToken, tokens.Expiry()); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refreshed tokens")
		}
		accessToken = tokens.AccessToken
	}

	activities, err := s.client.ListActivities(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	synced := 0
	for i := range activities {
		model, err := activityToModel(userID, &activities[i])
		if err != nil {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
					"activity_id": activities[i].ID,
				}), "skipping unparseable activity")
			}
			continue
		}
		created, err := s.repo.UpsertActivity(ctx, model)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store activity")
		}
		if created {
			synced++
		}
	}

	if err := s.repo.UpdateLastSync(ctx, conn.ID, time.Now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last sync")
	}

	return &SyncResult{
		SyncedCount:     synced,
		TotalActivities: len(activities),
	}, nil
}

func (s *service) Disconnect(ctx context.Context, userID uuid.UUID) error {
	affected, err := s.repo.DeleteConnectionByUser(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete connection")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no strava connection")
	}
	return nil
}

func activityToModel(userID uuid.UUID, activity *Activity) (*models.Activity, error) {
	startDate, err := ParseStartDate(activity.StartDate)
	if err != nil {
		return nil, err
	}

	var name *string
	if activity.Name != "" {
		name = &activity.Name
	}
	var calories *int
	if activity.Calories != nil {
		c := int(*activity.Calories)
		calories = &c
	}

	raw, err := activity.Raw()
	if err != nil {
		return nil, err
	}

	return &models.Activity{
		UserID:           userID,
		StravaActivityID: activity.ID,
		ActivityType:     activity.Type,
		ActivityName:     name,
		Distance:         activity.Distance,
		DistanceUnit:     "meters",
		DurationSeconds:  activity.MovingTime,
		StartDate:        startDate,
		AverageSpeed:     activity.AverageSpeed,
		MaxSpeed:         activity.MaxSpeed,
		AverageHeartRate: activity.AverageHeartRate,
		MaxHeartRate:     activity.MaxHeartRate,
		AveragePower:     activity.AverageWatts,
		MaxPower:         activity.MaxWatts,
		Calories:         calories,
		ElevationGain:    activity.ElevationGain,
		Description:      activity.Description,
		RawData:          raw,
	}, nil
}
