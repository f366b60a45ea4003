package controllers

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/lcervantes/pantrylog-backend/api/responses"
	"github.com/lcervantes/pantrylog-backend/api/validators"
	"github.com/lcervantes/pantrylog-backend/internal/pantry"
	"github.com/lcervantes/pantrylog-backend/pkg/enums"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
	"github.com/lcervantes/pantrylog-backend/pkg/logger"
)

// PantryList returns the merged pantry view for the authenticated user.
func PantryList(svc pantry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pantry service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// PantryAdd upserts a catalog product into the authenticated user's pantry.
func PantryAdd(svc pantry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pantry service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pantry.AddItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Add(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// PantryRemove deletes a pantry or custom row named by the path product id
// and the source query parameter.
func PantryRemove(svc pantry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pantry service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		source := enums.IntakeSourcePantry
		if raw := r.URL.Query().Get("source"); raw != "" {
			source, err = enums.ParseIntakeSource(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "source must be pantry or custom"))
				return
			}
		}

		if err := svc.Remove(r.Context(), userID, chi.URLParam(r, "productID"), source); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
