package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	DefaultCatalogBaseURL = "https://64e794b8b0fd9648b7902516.mockapi.io"
	DefaultProfileBaseURL = "https://651ff0cc906e276284c3c1bc.mockapi.io"
)

type Config struct {
	// server
	ListenAddr  string        `yaml:"listen_addr"`
	StoreMode   string        `yaml:"store_mode"`
	DatabaseURL string        `yaml:"database_url"`
	SeedFile    string        `yaml:"seed_file"`
	JWTSecret   string        `yaml:"jwt_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`

	// client
	CatalogBaseURL string        `yaml:"catalog_base_url"`
	ProfileBaseURL string        `yaml:"profile_base_url"`
	APIToken       string        `yaml:"api_token"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`
	HTTPMaxRetries int           `yaml:"http_max_retries"`
	HTTPRetryBase  time.Duration `yaml:"http_retry_base"`
	HTTPRetryMax   time.Duration `yaml:"http_retry_max"`
	FetchParallel  int           `yaml:"fetch_parallel"`

	// settings store
	SettingsBackend       string `yaml:"settings_backend"`
	SettingsPath          string `yaml:"settings_path"`
	SettingsEncryptionKey string `yaml:"settings_encryption_key"`

	LogLevel string `yaml:"log_level"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		ListenAddr:      ":18080",
		StoreMode:       "memory",
		JWTSecret:       "change-this-secret",
		TokenTTL:        24 * time.Hour,
		CatalogBaseURL:  DefaultCatalogBaseURL,
		ProfileBaseURL:  DefaultProfileBaseURL,
		HTTPTimeout:     10 * time.Second,
		HTTPMaxRetries:  0,
		HTTPRetryBase:   200 * time.Millisecond,
		HTTPRetryMax:    2 * time.Second,
		FetchParallel:   4,
		SettingsBackend: "file",
		SettingsPath:    defaultSettingsPath(),
		LogLevel:        "info",
	}
}

// Load reads the process environment on top of the defaults.
func Load() Config {
	return FromEnv(Defaults())
}

// FromEnv overrides base with any environment variable that is set.
func FromEnv(base Config) Config {
	return Config{
		ListenAddr:            getEnv("LISTEN_ADDR", base.ListenAddr),
		StoreMode:             getEnv("STORE_MODE", base.StoreMode),
		DatabaseURL:           getEnv("DATABASE_URL", base.DatabaseURL),
		SeedFile:              getEnv("SEED_FILE", base.SeedFile),
		JWTSecret:             getEnv("JWT_SECRET", base.JWTSecret),
		TokenTTL:              getDuration("TOKEN_TTL", base.TokenTTL),
		CatalogBaseURL:        getEnv("CATALOG_BASE_URL", base.CatalogBaseURL),
		ProfileBaseURL:        getEnv("PROFILE_BASE_URL", base.ProfileBaseURL),
		APIToken:              getEnv("API_TOKEN", base.APIToken),
		HTTPTimeout:           getDuration("HTTP_TIMEOUT", base.HTTPTimeout),
		HTTPMaxRetries:        getInt("HTTP_MAX_RETRIES", base.HTTPMaxRetries),
		HTTPRetryBase:         getDuration("HTTP_RETRY_BASE", base.HTTPRetryBase),
		HTTPRetryMax:          getDuration("HTTP_RETRY_MAX", base.HTTPRetryMax),
		FetchParallel:         getInt("FETCH_PARALLEL", base.FetchParallel),
		SettingsBackend:       getEnv("SETTINGS_BACKEND", base.SettingsBackend),
		SettingsPath:          getEnv("SETTINGS_PATH", base.SettingsPath),
		SettingsEncryptionKey: getEnv("SETTINGS_ENCRYPTION_KEY", base.SettingsEncryptionKey),
		LogLevel:              getEnv("LOG_LEVEL", base.LogLevel),
	}
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fakenft-settings.json"
	}
	return filepath.Join(dir, "fakenft", "settings.json")
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
