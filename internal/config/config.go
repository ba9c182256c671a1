package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server  ServerConfig  `envPrefix:"SERVER_"`
	Backend BackendConfig `envPrefix:"BACKEND_"`
	Session SessionConfig `envPrefix:"SESSION_"`
	Catalog CatalogConfig `envPrefix:"CATALOG_"`
}

type ServerConfig struct {
	Addr        string `env:"ADDR" envDefault:":8080"`
	CORSPattern string `env:"CORS_PATTERN" envDefault:"^https?://localhost(:[0-9]+)?$"`
}

type BackendConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:8000/api"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type SessionConfig struct {
	// FilePath persists the session to disk (the localStorage
	// analogue); empty means in-memory only.
	FilePath string `env:"FILE_PATH"`
	// SecretKey, when set, encrypts persisted session values at rest.
	// Base64 of a 32-byte key.
	SecretKey string `env:"SECRET_KEY"`
}

type CatalogConfig struct {
	PageSize int    `env:"PAGE_SIZE" envDefault:"48"`
	Locale   string `env:"LOCALE" envDefault:"en"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}
