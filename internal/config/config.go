package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the nodefit service.
type Config struct {
	AppPort string

	DBDriver string // "sqlite" or "postgres"
	DBDSN    string

	JWTSecret  string
	SessionTTL time.Duration
	BcryptCost int

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	WeatherBaseURL    string
	AirQualityBaseURL string
	OpenWeatherAPIKey string

	RabbitMQURL string

	LogLevel string
	LogDev   bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "nodefit.db")
	v.SetDefault("JWT_SECRET", "nodefit-local-secret")
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("WEATHER_BASE_URL", "https://api.open-meteo.com")
	v.SetDefault("AIR_QUALITY_BASE_URL", "https://api.openweathermap.org")
	v.SetDefault("OPENWEATHER_API_KEY", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEV", false)
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	driver := strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER")))
	switch driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	ttl, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		AppPort:           v.GetString("APP_PORT"),
		DBDriver:          driver,
		DBDSN:             v.GetString("DB_DSN"),
		JWTSecret:         secret,
		SessionTTL:        ttl,
		BcryptCost:        v.GetInt("BCRYPT_COST"),
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		GeminiBaseURL:     v.GetString("GEMINI_BASE_URL"),
		WeatherBaseURL:    v.GetString("WEATHER_BASE_URL"),
		AirQualityBaseURL: v.GetString("AIR_QUALITY_BASE_URL"),
		OpenWeatherAPIKey: v.GetString("OPENWEATHER_API_KEY"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogDev:            v.GetBool("LOG_DEV"),
	}, nil
}

// EventsEnabled reports whether domain events should be published.
func (c *Config) EventsEnabled() bool {
	return c != nil && strings.TrimSpace(c.RabbitMQURL) != ""
}
