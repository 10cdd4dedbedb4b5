package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/notify"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	GeocoderAPIKey     string // optional; enables naming unnamed coordinates

	HTTPTimeout time.Duration

	// Upstream rate limit.
	UpstreamRPS   float64
	UpstreamBurst int

	ForecastDays int
	MaxRecents   int
	MessageTTL   time.Duration

	// Session lifecycle.
	SessionIdleTTL time.Duration
	SweepInterval  time.Duration

	// Recents persistence. Empty RedisURL keeps ledgers in memory.
	RedisURL   string
	RecentsTTL time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.Port = getenvDefault("PORT", "8080")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.MessageTTL, err = getenvDuration("MESSAGE_TTL", notify.DefaultTTL); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = getenvDuration("SESSION_IDLE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getenvDuration("SWEEP_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if cfg.RecentsTTL, err = getenvDuration("RECENTS_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", weather.ForecastDays)
	if cfg.ForecastDays <= 0 {
		return nil, fmt.Errorf("invalid FORECAST_DAYS: must be positive")
	}
	cfg.MaxRecents = getenvInt("MAX_RECENTS", weather.MaxRecents)
	if cfg.MaxRecents <= 0 {
		return nil, fmt.Errorf("invalid MAX_RECENTS: must be positive")
	}

	cfg.UpstreamRPS = getenvFloat("UPSTREAM_RPS", 5)
	cfg.UpstreamBurst = getenvInt("UPSTREAM_BURST", 5)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
