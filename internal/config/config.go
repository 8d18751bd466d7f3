// Package config reads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultPort     = 8080
	defaultLanguage = "en"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Env             string
	DBPath          string
	Port            int
	Location        *time.Location
	DefaultLanguage string

	// LocationWarning is set when TZ could not be loaded and UTC was used.
	LocationWarning string
}

func (config Config) Production() bool {
	return config.Env == EnvProduction
}

func (config Config) ListenAddress() string {
	return ":" + strconv.Itoa(config.Port)
}

// Load reads .env from the working directory when present, then the process
// environment. Variables already set in the environment are not overridden.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: read .env: %v", ErrInvalidConfig, err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	env, err := resolveEnv(getEnv("AURAGON_ENV", EnvDevelopment))
	if err != nil {
		return Config{}, err
	}
	port, err := resolvePort(os.Getenv("PORT"))
	if err != nil {
		return Config{}, err
	}
	location, warning := resolveLocation(getEnv("TZ", "UTC"))

	return Config{
		Env:             env,
		DBPath:          getEnv("DB_PATH", filepath.Join("data", "auragon.db")),
		Port:            port,
		Location:        location,
		DefaultLanguage: strings.ToLower(getEnv("DEFAULT_LANGUAGE", defaultLanguage)),
		LocationWarning: warning,
	}, nil
}

func resolveEnv(raw string) (string, error) {
	switch env := strings.ToLower(strings.TrimSpace(raw)); env {
	case EnvDevelopment, EnvProduction:
		return env, nil
	default:
		return "", fmt.Errorf("%w: AURAGON_ENV must be %s or %s, got %q", ErrInvalidConfig, EnvDevelopment, EnvProduction, raw)
	}
}

func resolvePort(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: PORT must be between 1 and 65535, got %q", ErrInvalidConfig, raw)
	}
	return port, nil
}

func resolveLocation(name string) (*time.Location, string) {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Sprintf("invalid TZ %q, falling back to UTC", name)
	}
	return location, ""
}

func getEnv(key string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
