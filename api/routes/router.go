package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lcervantes/pantrylog-backend/api/controllers"
	"github.com/lcervantes/pantrylog-backend/api/middleware"
	activitiessvc "github.com/lcervantes/pantrylog-backend/internal/activities"
	"github.com/lcervantes/pantrylog-backend/internal/auth"
	"github.com/lcervantes/pantrylog-backend/internal/catalog"
	"github.com/lcervantes/pantrylog-backend/internal/pantry"
	stravasvc "github.com/lcervantes/pantrylog-backend/internal/strava"
	"github.com/lcervantes/pantrylog-backend/internal/supplements"
	"github.com/lcervantes/pantrylog-backend/internal/tracking"
	"github.com/lcervantes/pantrylog-backend/internal/users"
	"github.com/lcervantes/pantrylog-backend/pkg/auth/session"
	"github.com/lcervantes/pantrylog-backend/pkg/config"
	"github.com/lcervantes/pantrylog-backend/pkg/logger"
	"github.com/lcervantes/pantrylog-backend/pkg/metrics"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	SessionManager  *session.Manager
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer

	AuthService     auth.Service
	RegisterService auth.RegisterService
	UsersService    users.Service
	PantryService   pantry.Service
	SupplementsSvc  supplements.Service
	TrackingService tracking.Service
	StravaService   stravasvc.Service
	ActivitiesSvc   activitiessvc.Service
	CatalogStore    *catalog.Store
}

// NewRouter wires middleware, public routes, and the authenticated API surface.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.Strava.FrontendURL),
	)

	r.Get("/api/health", controllers.Health(cfg))

	if p.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", controllers.AuthSignup(p.RegisterService, logg))
		r.Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))

		// The OAuth provider calls back without a bearer token; identity
		// rides in the state parameter.
		r.Get("/strava/callback", controllers.StravaCallback(p.StravaService, cfg.Strava, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))
			r.Post("/logout", controllers.AuthLogout(p.AuthService, logg))
			r.Get("/profile", controllers.ProfileGet(p.UsersService, logg))
			r.Put("/profile", controllers.ProfileUpdate(p.UsersService, logg))
			r.Get("/strava/connect", controllers.StravaConnect(p.StravaService, logg))
			r.Get("/strava/status", controllers.StravaStatus(p.StravaService, logg))
			r.Post("/strava/sync", controllers.StravaSync(p.StravaService, logg))
			r.Delete("/strava/disconnect", controllers.StravaDisconnect(p.StravaService, logg))
		})
	})

	r.Get("/api/dsld/search", controllers.CatalogSearch(p.CatalogStore, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))

		r.Route("/api/pantry", func(r chi.Router) {
			r.Get("/", controllers.PantryList(p.PantryService, logg))
			r.Post("/add", controllers.PantryAdd(p.PantryService, logg))
			r.Delete("/{productID}", controllers.PantryRemove(p.PantryService, logg))
		})

		r.Route("/api/custom-supplements", func(r chi.Router) {
			r.Get("/", controllers.CustomSupplementList(p.SupplementsSvc, logg))
			r.Post("/add", controllers.CustomSupplementAdd(p.SupplementsSvc, logg))
		})

		r.Post("/api/check-duplicates", controllers.CheckDuplicates(p.SupplementsSvc, logg))

		r.Route("/api/supplement-tracking", func(r chi.Router) {
			r.Get("/", controllers.IntakeList(p.TrackingService, logg))
			r.Post("/log", controllers.IntakeLog(p.TrackingService, logg))
			r.Delete("/{entryID}", controllers.IntakeDelete(p.TrackingService, logg))
		})

		r.Get("/api/activities", controllers.ActivitiesList(p.ActivitiesSvc, logg))
	})

	return r
}
