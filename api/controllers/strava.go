package controllers

import (
	"net/http"

	"github.com/lcervantes/pantrylog-backend/api/responses"
	"github.com/lcervantes/pantrylog-backend/internal/strava"
	"github.com/lcervantes/pantrylog-backend/pkg/config"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
	"github.com/lcervantes/pantrylog-backend/pkg/logger"
)

// StravaConnect returns the authorization redirect for the authenticated user.
func StravaConnect(svc strava.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "strava service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.ConnectURL(userID))
	}
}

// StravaCallback completes the OAuth handshake and bounces the browser back
// to the frontend with a result flag.
func StravaCallback(svc strava.Service, cfg config.StravaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frontend := cfg.FrontendURL

		if svc == nil {
			http.Redirect(w, r, frontend+"?strava=error", http.StatusFound)
			return
		}

		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")
		if err := svc.HandleCallback(r.Context(), code, state); err != nil {
			if logg != nil {
				logg.Error(r.Context(), "strava callback failed", err)
			}
			http.Redirect(w, r, frontend+"?strava=error", http.StatusFound)
			return
		}

		http.Redirect(w, r, frontend+"?strava=connected", http.StatusFound)
	}
}

// StravaStatus reports the connection state for the authenticated user.
func StravaStatus(svc strava.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "strava service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := svc.Status(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}

// StravaSync pulls the latest activities from the provider.
func StravaSync(svc strava.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "strava service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Sync(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// StravaDisconnect removes the authenticated user's connection.
func StravaDisconnect(svc strava.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "strava service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Disconnect(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "disconnected"})
	}
}
