package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr = "127.0.0.1:3030"
)

var (
	ErrNoBaseURL = errors.New("required environment variable BASE_URL is not set")
)

type Config struct {
	// BaseURL is the externally reachable URL prefix used to build invite
	// links. Required; the only process-fatal configuration condition.
	BaseURL string

	ListenAddr string
}

// Load reads configuration from the environment, after a best-effort .env
// load. Variables already set in the environment win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		return Config{}, ErrNoBaseURL
	}
	return Config{
		BaseURL:    baseURL,
		ListenAddr: getEnv("LISTEN_ADDR", defaultListenAddr),
	}, nil
}

// getEnv returns the env var or a default
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
