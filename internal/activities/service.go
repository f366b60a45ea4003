package activities

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
	"github.com/lcervantes/pantrylog-backend/pkg/pagination"
)

// Service defines the behavior needed by the activities controller.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) (*PageDTO, error)
}

// ListFilter narrows and pages the activity listing.
type ListFilter struct {
	ActivityType string
	Page         pagination.Params
}

// ActivityDTO is the transport shape for one synced workout.
type ActivityDTO struct {
	ID               uuid.UUID `json:"id"`
	StravaActivityID int64     `json:"strava_activity_id"`
	ActivityType     string    `json:"activity_type"`
	ActivityName     *string   `json:"activity_name,omitempty"`
	Distance         *float64  `json:"distance,omitempty"`
	DistanceUnit     string    `json:"distance_unit"`
	DurationSeconds  *int64    `json:"duration_seconds,omitempty"`
	StartDate        time.Time `json:"start_date"`
	AverageSpeed     *float64  `json:"average_speed,omitempty"`
	MaxSpeed         *float64  `json:"max_speed,omitempty"`
	AverageHeartRate *float64  `json:"average_heart_rate,omitempty"`
	MaxHeartRate     *float64  `json:"max_heart_rate,omitempty"`
	AveragePower     *float64  `json:"average_power,omitempty"`
	MaxPower         *float64  `json:"max_power,omitempty"`
	Calories         *int      `json:"calories,omitempty"`
	ElevationGain    *float64  `json:"elevation_gain,omitempty"`
	SyncedAt         time.Time `json:"synced_at"`
}

// PageDTO wraps one page of activities with paging metadata.
type PageDTO struct {
	Activities []ActivityDTO `json:"activities"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int64         `json:"total"`
}

type activityRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, activityType string, page pagination.Params) ([]models.Activity, int64, error)
}

// ServiceParams bundles the dependencies required to build an activities service.
type ServiceParams struct {
	Repo activityRepository
}

type service struct {
	repo activityRepository
}

// NewService constructs an activities service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("activities repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) (*PageDTO, error) {
	page := filter.Page.Normalize()
	rows, total, err := s.repo.ListByUser(ctx, userID, strings.TrimSpace(filter.ActivityType), page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list activities")
	}

	out := make([]ActivityDTO, 0, len(rows))
	for i := range rows {
		out = append(out, fromModel(&rows[i]))
	}
	return &PageDTO{
		Activities: out,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
	}, nil
}

func fromModel(m *models.Activity) ActivityDTO {
	return ActivityDTO{
		ID:               m.ID,
		StravaActivityID: m.StravaActivityID,
		ActivityType:     m.ActivityType,
		ActivityName:     m.ActivityName,
		Distance:         m.Distance,
		DistanceUnit:     m.DistanceUnit,
		DurationSeconds:  m.DurationSeconds,
		StartDate:        m.StartDate,
		AverageSpeed:     m.AverageSpeed,
		MaxSpeed:         m.MaxSpeed,
		AverageHeartRate: m.AverageHeartRate,
		MaxHeartRate:     m.MaxHeartRate,
		AveragePower:     m.AveragePower,
		MaxPower:         m.MaxPower,
		Calories:         m.Calories,
		ElevationGain:    m.ElevationGain,
		SyncedAt:         m.SyncedAt,
	}
}
