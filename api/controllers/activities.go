package controllers

import (
	"net/http"

	"github.com/lcervantes/pantrylog-backend/api/responses"
	"github.com/lcervantes/pantrylog-backend/api/validators"
	"github.com/lcervantes/pantrylog-backend/internal/activities"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
	"github.com/lcervantes/pantrylog-backend/pkg/logger"
	"github.com/lcervantes/pantrylog-backend/pkg/pagination"
)

// ActivitiesList returns one page of the user's synced activities.
func ActivitiesList(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activities service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), userID, activities.ListFilter{
			ActivityType: r.URL.Query().Get("activityType"),
			Page:         pagination.Params{Page: page, Limit: limit},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
