package rest

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/friendsofgo/errors"
	"github.com/go-playground/validator/v10"
)

// Config describes the remote listing endpoint.
type Config struct {
	BaseURL    string        `env:"BASE_URL" envDefault:"https://dummyjson.com" validate:"required,url"`
	ListPath   string        `env:"LIST_PATH" envDefault:"/products" validate:"required,startswith=/"`
	SearchPath string        `env:"SEARCH_PATH" envDefault:"/products/search" validate:"required,startswith=/"`
	RecordsKey string        `env:"RECORDS_KEY" envDefault:"products" validate:"required"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://dummyjson.com",
		ListPath:   "/products",
		SearchPath: "/products/search",
		RecordsKey: "products",
		Timeout:    10 * time.Second,
	}
}

// LoadConfig reads Config from GRIDVIEW_REST_* environment variables.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "GRIDVIEW_REST_"})
	if err != nil {
		return Config{}, errors.Wrap(err, "parse rest config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid rest config")
	}
	return nil
}
