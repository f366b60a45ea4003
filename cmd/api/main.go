package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lcervantes/pantrylog-backend/api/routes"
	"github.com/lcervantes/pantrylog-backend/internal/activities"
	"github.com/lcervantes/pantrylog-backend/internal/auth"
	"github.com/lcervantes/pantrylog-backend/internal/catalog"
	"github.com/lcervantes/pantrylog-backend/internal/pantry"
	"github.com/lcervantes/pantrylog-backend/internal/strava"
	"github.com/lcervantes/pantrylog-backend/internal/supplements"
	"github.com/lcervantes/pantrylog-backend/internal/tracking"
	"github.com/lcervantes/pantrylog-backend/internal/users"
	"github.com/lcervantes/pantrylog-backend/pkg/auth/session"
	"github.com/lcervantes/pantrylog-backend/pkg/config"
	"github.com/lcervantes/pantrylog-backend/pkg/db"
	"github.com/lcervantes/pantrylog-backend/pkg/logger"
	"github.com/lcervantes/pantrylog-backend/pkg/metrics"
	"github.com/lcervantes/pantrylog-backend/pkg/migrate"
	"github.com/lcervantes/pantrylog-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	customRepo := supplements.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		SessionManager: sessionManager,
		PasswordConfig: cfg.Password,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.ServiceParams{Repo: userRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	pantryService, err := pantry.NewService(pantry.ServiceParams{
		PantryRepo: pantry.NewRepository(gormDB),
		CustomRepo: customRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create pantry service", err)
		os.Exit(1)
	}

	catalogStore := catalog.NewStore(cfg.Catalog.DSLDDir)

	supplementsService, err := supplements.NewService(supplements.ServiceParams{
		Repo:     customRepo,
		Detector: supplements.NewDetector(gormDB, catalogStore),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create supplements service", err)
		os.Exit(1)
	}

	trackingService, err := tracking.NewService(tracking.ServiceParams{
		Repo: tracking.NewRepository(gormDB),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create tracking service", err)
		os.Exit(1)
	}

	stravaClient, err := strava.NewClient(cfg.Strava.ClientID, cfg.Strava.ClientSecret, cfg.Strava.RedirectURI)
	if err != nil {
		logg.Warn(context.Background(), "strava client not configured; connection endpoints disabled")
	}

	var stravaService strava.Service
	if stravaClient != nil {
		stravaService, err = strava.NewService(strava.ServiceParams{
			Client: stravaClient,
			Repo:   strava.NewRepository(gormDB),
			Logger: logg,
		})
		if err != nil {
			logg.Error(context.Background(), "failed to create strava service", err)
			os.Exit(1)
		}
	}

	activitiesService, err := activities.NewService(activities.ServiceParams{
		Repo: activities.NewRepository(gormDB),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create activities service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			SessionManager:  sessionManager,
			HTTPMetrics:     httpMetrics,
			MetricsGatherer: registry,
			AuthService:     authService,
			RegisterService: registerService,
			UsersService:    usersService,
			PantryService:   pantryService,
			SupplementsSvc:  supplementsService,
			TrackingService: trackingService,
			StravaService:   stravaService,
			ActivitiesSvc:   activitiesService,
			CatalogStore:    catalogStore,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
