package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "sneakhead"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Session  SessionConfig
	Password PasswordConfig
	Time     TimeConfig
	Metrics  MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Time.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SNEAKHEAD_APP_ENV" default:"dev"`
	Port         string `envconfig:"SNEAKHEAD_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"SNEAKHEAD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SNEAKHEAD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig locates the document store's data directory.
type StoreConfig struct {
	DataDir string `envconfig:"SNEAKHEAD_STORE_DATA_DIR" default:"data"`
}

type SessionConfig struct {
	Secret         string        `envconfig:"SNEAKHEAD_SESSION_SECRET" required:"true"`
	TTL            time.Duration `envconfig:"SNEAKHEAD_SESSION_TTL" default:"30m"`
	RememberMeTTL  time.Duration `envconfig:"SNEAKHEAD_SESSION_REMEMBER_ME_TTL" default:"240h"`
	CookieName     string        `envconfig:"SNEAKHEAD_SESSION_COOKIE_NAME" default:"session"`
	CookieSecure   bool          `envconfig:"SNEAKHEAD_SESSION_COOKIE_SECURE" default:"false"`
	CookieHTTPOnly bool          `envconfig:"SNEAKHEAD_SESSION_COOKIE_HTTP_ONLY" default:"true"`
	Issuer         string        `envconfig:"SNEAKHEAD_SESSION_ISSUER" default:"sneakhead"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SNEAKHEAD_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SNEAKHEAD_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SNEAKHEAD_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SNEAKHEAD_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SNEAKHEAD_ARGON_KEY_LEN" default:"32"`
}

// TimeConfig fixes the zone used for activity log and gift card timestamps,
// so ordering comparisons across entries stay meaningful.
type TimeConfig struct {
	Zone string `envconfig:"SNEAKHEAD_TIME_ZONE" default:"Asia/Jerusalem"`
}

func (t TimeConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(t.Zone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", t.Zone, err)
	}
	return loc, nil
}

type MetricsConfig struct {
	Port string `envconfig:"SNEAKHEAD_METRICS_PORT" default:"9090"`
}
