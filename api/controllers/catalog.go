package controllers

import (
	"net/http"

	"github.com/lcervantes/pantrylog-backend/api/responses"
	"github.com/lcervantes/pantrylog-backend/internal/catalog"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
	"github.com/lcervantes/pantrylog-backend/pkg/logger"
)

// CatalogSearch free-text searches the bundled DSLD product dataset.
func CatalogSearch(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		results, err := store.Search(r.Context(), r.URL.Query().Get("query"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, results)
	}
}
