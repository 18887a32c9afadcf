// Package config loads service settings from config.yml, a .env file and the
// process environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yml"

type ServerConfig struct {
	Port           int           `yaml:"port" validate:"gt=0,lte=65535"`
	RequestTimeout time.Duration `yaml:"requestTimeout" validate:"gte=0"`
}

type StoreConfig struct {
	Driver   string        `yaml:"driver" validate:"oneof=memory snapshot sqlite"`
	Path     string        `yaml:"path" validate:"required_unless=Driver memory"`
	CacheTTL time.Duration `yaml:"cacheTTL" validate:"gte=0"`
}

type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
}

func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{Port: 3001, RequestTimeout: 5 * time.Second},
		Store:  StoreConfig{Driver: "memory"},
	}
}

// Load reads path (a missing file means defaults), applies .env and
// environment overrides and validates the result.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("No config file at %s, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v, ok := lookup("REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		cfg.Server.RequestTimeout = d
	}
	if v, ok := lookup("STORE_DRIVER"); ok && v != "" {
		cfg.Store.Driver = v
	}
	if v, ok := lookup("STORE_PATH"); ok && v != "" {
		cfg.Store.Path = v
	}
	if v, ok := lookup("CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		cfg.Store.CacheTTL = d
	}
	return nil
}

func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
