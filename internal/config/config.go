package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DevJWTSecret signs tokens when the app does not run in production.
const DevJWTSecret = "dev-secret"

// Config holds the process-wide settings read from the environment.
type Config struct {
	Port             string
	DatabaseDSN      string
	Production       bool
	JWTSecret        string
	TokenTTL         time.Duration
	RabbitMQURL      string
	LogLevel         string
	CrashTestEnabled bool
}

// SetDefaults registers the default value of every known key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("DATABASE_DSN", "mesto.db")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CRASH_TEST_ENABLED", true)
}

// Load reads the configuration from v. Environment variables override defaults.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		Port:             v.GetString("PORT"),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		Production:       strings.EqualFold(v.GetString("APP_ENV"), "production"),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		CrashTestEnabled: v.GetBool("CRASH_TEST_ENABLED"),
	}

	// Only production reads the secret from the environment.
	if cfg.Production {
		cfg.JWTSecret = v.GetString("JWT_SECRET")
		if cfg.JWTSecret == "" {
			return Config{}, fmt.Errorf("JWT_SECRET must be set when APP_ENV is production")
		}
	} else {
		cfg.JWTSecret = DevJWTSecret
	}

	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", v.GetString("TOKEN_TTL"))
	}
	return cfg, nil
}

// ListenAddr returns the address Fiber should listen on.
func (c Config) ListenAddr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
