package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lcervantes/pantrylog-backend/api/middleware"
	"github.com/lcervantes/pantrylog-backend/api/responses"
	"github.com/lcervantes/pantrylog-backend/pkg/config"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

func Health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PantryLog-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// authedUserID extracts the authenticated user's uuid from the request context.
func authedUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return id, nil
}
