package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "PANTRYLOG_DB_DSN"
	EnvDBHost = "PANTRYLOG_DB_HOST"
	EnvDBUser = "PANTRYLOG_DB_USER"
	EnvDBName = "PANTRYLOG_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Strava       StravaConfig
	Catalog      CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PANTRYLOG_APP_ENV" required:"true"`
	Port         string `envconfig:"PANTRYLOG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PANTRYLOG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PANTRYLOG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PANTRYLOG_DB_DSN"`
	Driver string `envconfig:"PANTRYLOG_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PANTRYLOG_DB_HOST"`
	LegacyPort     int    `envconfig:"PANTRYLOG_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PANTRYLOG_DB_USER"`
	LegacyPassword string `envconfig:"PANTRYLOG_DB_PASSWORD"`
	LegacyName     string `envconfig:"PANTRYLOG_DB_NAME"`
	LegacySSLMode  string `envconfig:"PANTRYLOG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PANTRYLOG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PANTRYLOG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PANTRYLOG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PANTRYLOG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PANTRYLOG_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PANTRYLOG_REDIS_ADDR"`
	Password     string        `envconfig:"PANTRYLOG_REDIS_PASSWORD"`
	DB           int           `envconfig:"PANTRYLOG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PANTRYLOG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PANTRYLOG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PANTRYLOG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PANTRYLOG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PANTRYLOG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PANTRYLOG_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PANTRYLOG_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PANTRYLOG_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PANTRYLOG_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PANTRYLOG_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PANTRYLOG_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PANTRYLOG_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PANTRYLOG_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PANTRYLOG_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PANTRYLOG_AUTO_MIGRATE" default:"false"`
}

type StravaConfig struct {
	ClientID     string `envconfig:"PANTRYLOG_STRAVA_CLIENT_ID"`
	ClientSecret string `envconfig:"PANTRYLOG_STRAVA_CLIENT_SECRET"`
	RedirectURI  string `envconfig:"PANTRYLOG_STRAVA_REDIRECT_URI" default:"http://localhost:3001/api/auth/strava/callback"`
	FrontendURL  string `envconfig:"PANTRYLOG_FRONTEND_URL" default:"http://localhost:3000"`
}

type CatalogConfig struct {
	DSLDDir string `envconfig:"PANTRYLOG_DSLD_DIR" default:"./DSLD-full-database-JSON"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
