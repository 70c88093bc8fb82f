package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-campaign-dashboard/internal/config/configs"
)

// Config aggregates all configuration sections. Nested structs are parsed
// with their envPrefix; see the configs package for defaults.
type Config struct {
	// Env names the deployment environment. "prod" enables HTTPS redirects.
	Env string `env:"ENV" envDefault:"dev" validate:"oneof=dev test prod"`

	HTTP      configs.HTTP      `envPrefix:"HTTP_"`
	Log       configs.Logger    `envPrefix:"LOG_"`
	Redis     configs.Redis     `envPrefix:"REDIS_"`
	Dashboard configs.Dashboard `envPrefix:"DASHBOARD_"`
}

// IsProduction reports whether Env is prod.
func (c Config) IsProduction() bool {
	return c.Env == "prod"
}

// Load reads the optional dotenv files, then the environment, and validates
// the result. Missing dotenv files are ignored; variables already set in the
// environment win over file values.
func Load(dotenv ...string) (Config, error) {
	if err := loadDotenv(dotenv...); err != nil {
		return Config{}, err
	}
	return Parse(env.Options{})
}

// Parse reads the configuration with opts (use opts.Environment to inject
// variables) and validates it.
func Parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return nil
}
