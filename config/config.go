package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	Port string

	MenuBaseURL string
	MenuAPIKey  string
	MenuTimeout time.Duration

	CartBackend   string
	CartTTL       time.Duration
	RedisURL      string
	RedisPassword string
	MongoURI      string
	MongoDB       string

	SessionSecret        []byte
	RequirePhone         bool
	AllowEmptyCartOrders bool
}

// Load reads .env if present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:          get("PORT", ":8080"),
		MenuBaseURL:   get("MICROCMS_BASE_URL", "https://wv1vrthq06.microcms.io/api/v1"),
		MenuAPIKey:    get("MICROCMS_API_KEY", ""),
		CartBackend:   strings.ToLower(get("CART_BACKEND", BackendRedis)),
		RedisURL:      get("REDIS_URL", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		MongoURI:      get("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       get("MONGO_DB", "cupcakery"),
		SessionSecret: []byte(get("SESSION_SECRET", "")),
	}
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}

	var err error
	if cfg.MenuTimeout, err = time.ParseDuration(get("MICROCMS_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("MICROCMS_TIMEOUT: %w", err)
	}
	if cfg.CartTTL, err = time.ParseDuration(get("CART_TTL", "720h")); err != nil {
		return Config{}, fmt.Errorf("CART_TTL: %w", err)
	}
	if cfg.RequirePhone, err = strconv.ParseBool(get("CHECKOUT_REQUIRE_PHONE", "true")); err != nil {
		return Config{}, fmt.Errorf("CHECKOUT_REQUIRE_PHONE: %w", err)
	}
	if cfg.AllowEmptyCartOrders, err = strconv.ParseBool(get("CHECKOUT_ALLOW_EMPTY", "false")); err != nil {
		return Config{}, fmt.Errorf("CHECKOUT_ALLOW_EMPTY: %w", err)
	}

	switch cfg.CartBackend {
	case BackendRedis, BackendMongo, BackendMemory:
	default:
		return Config{}, fmt.Errorf("CART_BACKEND %q: want redis, mongo or memory", cfg.CartBackend)
	}

	if cfg.MenuAPIKey == "" {
		log.Println("MICROCMS_API_KEY is not set; menu requests will be rejected")
	}
	if len(cfg.SessionSecret) == 0 {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	return cfg, nil
}
