package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	httpapi "github.com/YogeshSabbani1213/Weather-Application-Development/internal/api/http"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/config"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/scheduler"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/session"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/store"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("ERROR: OPENWEATHER_API_KEY is not set; every lookup will fail")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Recents persistence: Redis when configured, memory otherwise.
	var recents weather.RecentsStore
	if cfg.RedisURL != "" {
		rs, err := store.NewRedisStore(cfg.RedisURL, cfg.RecentsTTL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		defer rs.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rs.Ping(pingCtx); err != nil {
			log.Printf("ERROR: redis not reachable, recents will not persist until it is: %v", err)
		}
		cancel()
		recents = rs
	} else {
		recents = store.NewMemoryStore(cfg.RecentsTTL)
	}

	// Upstream client guarded by a rate limiter and a circuit breaker.
	limiter := rate.NewLimiter(rate.Limit(cfg.UpstreamRPS), cfg.UpstreamBurst)
	owm := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, limiter)

	var namer weather.PlaceNamer
	if g := providers.NewGoogleGeocoder(cfg.GeocoderAPIKey); g != nil {
		namer = g
	}

	service := weather.NewService(owm, namer, cfg.ForecastDays)
	sessions := session.NewManager(recents, session.Options{
		MaxRecents: cfg.MaxRecents,
		MessageTTL: cfg.MessageTTL,
		IdleTTL:    cfg.SessionIdleTTL,
	})

	// Scheduler that clears expired messages and idle sessions.
	sched := scheduler.New(sessions, cfg.SweepInterval, 15*time.Minute)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, sessions, true)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
