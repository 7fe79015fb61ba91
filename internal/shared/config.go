package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	BackendBase  string
	BackendRPS   int
	PaymentBase  string
	PaymentKey   string
	JWTSecret    string
	ServiceToken string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	Workers      int
	CacheTTL     time.Duration

	// restaurants the reconciler sweeps; empty means one global admin sweep
	RestaurantIDs []string
}

func Load() Config {
	// .env is a local-dev convenience; absence is fine
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		BackendBase:  env("BACKEND_BASE_URL", "http://localhost:3005/api"),
		BackendRPS:   atoi("BACKEND_RPS", 10),
		PaymentBase:  env("PAYMENT_BASE_URL", "https://checkout.example.com"),
		PaymentKey:   env("PAYMENT_API_KEY", ""),
		JWTSecret:    env("JWT_SECRET", ""),
		ServiceToken: env("SERVICE_TOKEN", ""),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		Workers:      atoi("RECONCILE_WORKERS", 8),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if v := os.Getenv("RECONCILE_RESTAURANTS"); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.RestaurantIDs = append(c.RestaurantIDs, id)
			}
		}
	}
	if c.PaymentKey == "" {
		log.Warn().Msg("PAYMENT_API_KEY is empty")
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
