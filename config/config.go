package config

import (
	"fmt"
	"net"
	"net/url"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey               string `envconfig:"API_KEY"`
		AdminDefaultPassword string `envconfig:"ADMIN_DEFAULT_PASSWORD" default:"bolinha"`
	} `envconfig:"APP"`

	Checkin struct {
		Capacity        int    `envconfig:"CAPACITY"          default:"12"`
		CancelCutoffUTC string `envconfig:"CANCEL_CUTOFF_UTC" default:"18:00"`
	} `envconfig:"CHECKIN"`

	Cache struct {
		Redis struct {
			MaxRetry      int `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime int `envconfig:"RETRY_WAIT_TIME" default:"2"`
			Primary       struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry           int                `envconfig:"MAX_RETRY"             default:"5"`
			RetryWaitTime      int                `envconfig:"RETRY_WAIT_TIME"       default:"2"`
			MaxOpenConns       int                `envconfig:"MAX_OPEN_CONNS"        default:"10"`
			MaxIdleConns       int                `envconfig:"MAX_IDLE_CONNS"        default:"10"`
			ConnMaxLifetimeMin int                `envconfig:"CONN_MAX_LIFETIME_MIN" default:"30"`
			MigrationTable     string             `envconfig:"MIGRATION_TABLE"       default:"schema_migrations"`
			AutoMigrate        bool               `envconfig:"AUTO_MIGRATE"`
			Prefix             string             `envconfig:"PREFIX"`
			Read               PostgresConnection `envconfig:"READ"`
			Write              PostgresConnection `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

// PostgresConnection addresses one database endpoint.
type PostgresConnection struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

// DSN builds a postgres URL for the connection. The database name gets the
// prefix prepended and extra carries driver-specific query parameters.
func (p PostgresConnection) DSN(prefix string, extra map[string]string) string {
	query := url.Values{}

	if p.SSLMode != "" {
		query.Set("sslmode", p.SSLMode)
	}

	if p.Timezone != "" {
		query.Set("timezone", p.Timezone)
	}

	for key, value := range extra {
		if value != "" {
			query.Set(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.Username, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + prefix + p.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
