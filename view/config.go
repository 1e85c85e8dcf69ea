package view

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/friendsofgo/errors"
	"github.com/go-playground/validator/v10"

	"github.com/nrfta/gridview-go"
)

// Config tunes a Viewer.
type Config struct {
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"20" validate:"gte=1"`

	// MaxPageSize caps SetPageSize when positive. Zero means no cap.
	MaxPageSize int `env:"MAX_PAGE_SIZE" envDefault:"0" validate:"gte=0"`

	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		DefaultPageSize: gridview.DefaultPageSize,
		FetchTimeout:    10 * time.Second,
	}
}

// LoadConfig reads Config from GRIDVIEW_* environment variables.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "GRIDVIEW_"})
	if err != nil {
		return Config{}, errors.Wrap(err, "parse view config")
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
		return errors.Wrap(err, "invalid view config")
	}
	if c.capped() && c.DefaultPageSize > c.MaxPageSize {
		return errors.Errorf("invalid view config: default page size %d exceeds max page size %d", c.DefaultPageSize, c.MaxPageSize)
	}
	return nil
}

func (c Config) capped() bool {
	return c.MaxPageSize > 0
}

// pageConfig returns the size limits of a capped config, nil otherwise.
func (c Config) pageConfig() *gridview.PageConfig {
	if !c.capped() {
		return nil
	}
	return gridview.NewPageConfig().
		WithDefaultSize(c.DefaultPageSize).
		WithMaxSize(c.MaxPageSize)
}
