package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Anomaly thresholds for weighing entry, in kg/day. Tunable per herd
	// type without a code change.
	WeighingDropLimit  float64 // gmd below this raises "below last weighing"
	WeighingSpikeLimit float64 // gmd above this raises "unusually high gain"
}

func Load() *Config {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:        getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=feedlot port=5432 sslmode=disable"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CORSOrigins:        getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		WeighingDropLimit:  getEnvFloat("WEIGHING_DROP_LIMIT", -1.0),
		WeighingSpikeLimit: getEnvFloat("WEIGHING_SPIKE_LIMIT", 3.0),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set! Required in production.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters!")
	}
	if cfg.WeighingSpikeLimit <= cfg.WeighingDropLimit {
		log.Fatal("[FATAL] WEIGHING_SPIKE_LIMIT must be greater than WEIGHING_DROP_LIMIT")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value, set your own domain for production.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("[FATAL] %s must be a number, got %q", key, v)
	}
	return f
}
