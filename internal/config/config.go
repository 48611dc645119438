package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the attendance API.
type Config struct {
	AppName     string
	AppEnv      string
	AppPort     string
	APIPrefix   string
	StoreDriver string
	DatabaseURL string
	// DatabaseName overrides the database named in a Mongo URI path; empty defers to it.
	DatabaseName    string
	RedisURL        string
	UsersCacheTTL   time.Duration
	FrontendOrigin  string
	RateLimitMax    int
	RateLimitWindow time.Duration
	LogLevel        string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ATTENDANCE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Names used by the earlier deployment of this service.
	_ = v.BindEnv("database.url", "ATTENDANCE_DATABASE_URL", "MONGO_URI")
	_ = v.BindEnv("app.port", "ATTENDANCE_APP_PORT", "PORT")
	_ = v.BindEnv("cors.origin", "ATTENDANCE_CORS_ORIGIN", "FRONTEND_URL")

	v.SetDefault("app.name", "QR Attendance API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "4000")
	v.SetDefault("api.prefix", "/api/attendance")
	v.SetDefault("store.driver", "mongo")
	v.SetDefault("users.cache_ttl", "30s")
	v.SetDefault("rate_limit.max", 120)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("log.level", "info")

	cacheTTL, err := parseDuration(v, "users.cache_ttl")
	if err != nil {
		return Config{}, err
	}

	window, err := parseDuration(v, "rate_limit.window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		APIPrefix:       "/" + strings.Trim(v.GetString("api.prefix"), "/"),
		StoreDriver:     strings.ToLower(v.GetString("store.driver")),
		DatabaseURL:     v.GetString("database.url"),
		DatabaseName:    v.GetString("database.name"),
		RedisURL:        v.GetString("redis.url"),
		UsersCacheTTL:   cacheTTL,
		FrontendOrigin:  strings.TrimSuffix(v.GetString("cors.origin"), "/"),
		RateLimitMax:    v.GetInt("rate_limit.max"),
		RateLimitWindow: window,
		LogLevel:        strings.ToLower(v.GetString("log.level")),
	}

	switch cfg.StoreDriver {
	case "mongo", "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.FrontendOrigin == "" {
		return Config{}, fmt.Errorf("cors origin must be provided")
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 120
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
