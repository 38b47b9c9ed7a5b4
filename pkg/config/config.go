package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Environment string
	Port        string
	GinMode     string

	DatabaseDriver string
	DatabasePath   string
	DatabaseURL    string
	DBLogQueries   bool

	JWTSecret string
	JWTTTL    time.Duration

	UploadsPath string
	RedisURL    string

	TelemetryEnabled bool
	OTLPEndpoint     string
	MetricsPort      string

	CORSAllowedOrigins []string

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	CacheEnabled bool
	CacheConfigs map[string]CacheConfig

	EnforceHTTPS bool
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type CacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment:        "development",
		Port:               "8080",
		GinMode:            "debug",
		DatabaseDriver:     "sqlite",
		DatabasePath:       "activityapp.db",
		JWTSecret:          "change-me",
		JWTTTL:             3 * time.Hour,
		UploadsPath:        "uploads",
		OTLPEndpoint:       "localhost:4317",
		MetricsPort:        "9090",
		CORSAllowedOrigins: []string{"*"},
		RateLimitEnabled:   true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /auth/register": {
				Requests: 5,
				Window:   time.Minute,
			},
			"POST /auth/sign-in": {
				Requests: 10,
				Window:   time.Minute,
			},
			"POST /activities/new": {
				Requests: 20,
				Window:   time.Minute,
			},
		},
		CacheEnabled: true,
		CacheConfigs: map[string]CacheConfig{
			"/activities": {
				TTL:     3 * time.Second,
				Enabled: true,
			},
		},
		EnforceHTTPS: false,
	}
}

// Load reads an optional .env file and the process environment on top of
// GetDefaultConfig.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	defaults := GetDefaultConfig()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", defaults.Environment)
	v.SetDefault("PORT", defaults.Port)
	v.SetDefault("GIN_MODE", defaults.GinMode)
	v.SetDefault("DATABASE_DRIVER", defaults.DatabaseDriver)
	v.SetDefault("DATABASE_PATH", defaults.DatabasePath)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_LOG_QUERIES", false)
	v.SetDefault("JWT_SECRET", defaults.JWTSecret)
	v.SetDefault("JWT_TTL", defaults.JWTTTL)
	v.SetDefault("UPLOADS_PATH", defaults.UploadsPath)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("TELEMETRY_ENABLED", false)
	v.SetDefault("OTLP_ENDPOINT", defaults.OTLPEndpoint)
	v.SetDefault("METRICS_PORT", defaults.MetricsPort)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_ENABLED", defaults.RateLimitEnabled)
	v.SetDefault("CACHE_ENABLED", defaults.CacheEnabled)
	v.SetDefault("ENFORCE_HTTPS", defaults.EnforceHTTPS)

	cfg := defaults

	cfg.Environment = v.GetString("ENVIRONMENT")
	cfg.Port = v.GetString("PORT")
	cfg.GinMode = v.GetString("GIN_MODE")
	cfg.DatabaseDriver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	cfg.DatabasePath = v.GetString("DATABASE_PATH")
	cfg.DatabaseURL = v.GetString("DATABASE_URL")
	cfg.DBLogQueries = v.GetBool("DB_LOG_QUERIES")
	cfg.JWTSecret = v.GetString("JWT_SECRET")
	cfg.JWTTTL = v.GetDuration("JWT_TTL")
	cfg.UploadsPath = v.GetString("UPLOADS_PATH")
	cfg.RedisURL = v.GetString("REDIS_URL")
	cfg.TelemetryEnabled = v.GetBool("TELEMETRY_ENABLED")
	cfg.OTLPEndpoint = v.GetString("OTLP_ENDPOINT")
	cfg.MetricsPort = v.GetString("METRICS_PORT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimitEnabled = v.GetBool("RATE_LIMIT_ENABLED")
	cfg.CacheEnabled = v.GetBool("CACHE_ENABLED")
	cfg.EnforceHTTPS = v.GetBool("ENFORCE_HTTPS") || cfg.GinMode == "release"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite":
		if c.DatabasePath == "" {
			return errors.New("DATABASE_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return errors.New("DATABASE_DRIVER must be sqlite or postgres")
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	if c.Environment == "production" && c.JWTSecret == GetDefaultConfig().JWTSecret {
		return errors.New("JWT_SECRET must be changed in production")
	}

	return nil
}

func splitList(value string) []string {
	var items []string

	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
