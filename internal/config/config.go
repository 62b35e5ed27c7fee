package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Addr     string

	StorageBackend string // file, postgres
	PostgresDSN    string
	SessionsFile   string
	ProfilesFile   string
	StatesFile     string

	// Learner states are cached in redis when a URL is configured;
	// otherwise they ride on the primary backend.
	RedisURL string

	AuthToken      string
	AuthServiceURL string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:            getEnv("APP_ENV", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			Addr:           getEnv("LISTEN_ADDR", ":8088"),
			StorageBackend: getEnv("STORAGE_BACKEND", "file"),
			PostgresDSN:    getEnv("POSTGRES_DSN", ""),
			SessionsFile:   getEnv("SESSIONS_FILE", "data/sleep_sessions.json"),
			ProfilesFile:   getEnv("PROFILES_FILE", "data/profiles.json"),
			StatesFile:     getEnv("STATES_FILE", "data/learner_states.json"),
			RedisURL:       getEnv("REDIS_URL", ""),
			AuthToken:      getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
			AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.StorageBackend == "postgres" && c.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.StorageBackend == "file" && (c.SessionsFile == "" || c.ProfilesFile == "" || c.StatesFile == "") {
		return errors.New("File storage requires SESSIONS_FILE, PROFILES_FILE and STATES_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
