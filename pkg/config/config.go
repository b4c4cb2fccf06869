package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "VISION"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv       = "VISION_APP_ENV"
	EnvPort         = "VISION_APP_PORT"
	EnvDBDSN        = "VISION_DB_DSN"
	EnvDBDriver     = "VISION_DB_DRIVER"
	EnvDBHost       = "VISION_DB_HOST"
	EnvDBUser       = "VISION_DB_USER"
	EnvDBName       = "VISION_DB_NAME"
	EnvRedisURL     = "VISION_REDIS_URL"
	EnvAuthUsername = "VISION_AUTH_USERNAME"
	EnvAuthPassword = "VISION_AUTH_PASSWORD"
	EnvAuthHash     = "VISION_AUTH_PASSWORD_HASH"

	defaultSQLiteDSN = "order_management.db"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Password     PasswordConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"VISION_APP_ENV" required:"true"`
	Port         string `envconfig:"VISION_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"VISION_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"VISION_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"VISION_LOG_WARN_STACK" default:"false"`

	ShutdownTimeout time.Duration `envconfig:"VISION_SHUTDOWN_TIMEOUT" default:"10s"`
	ReadTimeout     time.Duration `envconfig:"VISION_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"VISION_WRITE_TIMEOUT" default:"30s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VISION_DB_DSN"`
	Driver string `envconfig:"VISION_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VISION_DB_HOST"`
	LegacyPort     int    `envconfig:"VISION_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VISION_DB_USER"`
	LegacyPassword string `envconfig:"VISION_DB_PASSWORD"`
	LegacyName     string `envconfig:"VISION_DB_NAME"`
	LegacySSLMode  string `envconfig:"VISION_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VISION_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VISION_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VISION_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VISION_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite one.
func (d DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(d.Driver), DriverSQLite)
}

// RedisConfig is optional; an empty URL and address disables Redis-backed features.
type RedisConfig struct {
	URL          string        `envconfig:"VISION_REDIS_URL"`
	Address      string        `envconfig:"VISION_REDIS_ADDR"`
	Password     string        `envconfig:"VISION_REDIS_PASSWORD"`
	DB           int           `envconfig:"VISION_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VISION_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VISION_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VISION_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VISION_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VISION_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type AuthConfig struct {
	Username     string `envconfig:"VISION_AUTH_USERNAME" default:"admin"`
	Password     string `envconfig:"VISION_AUTH_PASSWORD" default:"pass123"`
	PasswordHash string `envconfig:"VISION_AUTH_PASSWORD_HASH"`
	Realm        string `envconfig:"VISION_AUTH_REALM" default:"ERP Integration API"`

	FailureWindow time.Duration `envconfig:"VISION_AUTH_FAILURE_WINDOW" default:"5m"`
	FailureLimit  int           `envconfig:"VISION_AUTH_FAILURE_LIMIT" default:"10"`

	// only enable behind a proxy that overwrites X-Forwarded-For
	TrustProxyHeaders bool `envconfig:"VISION_AUTH_TRUST_PROXY_HEADERS" default:"false"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VISION_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VISION_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VISION_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VISION_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VISION_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"VISION_CORS_ALLOWED_ORIGINS" default:"*"`
	MaxAge         int      `envconfig:"VISION_CORS_MAX_AGE" default:"300"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VISION_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		db.DSN = defaultSQLiteDSN
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
