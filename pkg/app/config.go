package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds the runtime tunables. Defaults reproduce the store's shipped
// behavior: one random depletion every 120s, 30s restock delay, restock to a
// quantity in [5,20].
type Config struct {
	DepleteWindow time.Duration `envconfig:"DEPLETE_WINDOW" default:"120s"`
	RestockDelay  time.Duration `envconfig:"RESTOCK_DELAY" default:"30s"`
	RestockMin    int           `envconfig:"RESTOCK_MIN" default:"5"`
	RestockMax    int           `envconfig:"RESTOCK_MAX" default:"20"`
	Seed          int64         `envconfig:"SEED" default:"0"`
	LogFile       string        `envconfig:"LOG_FILE"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"warn"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("store", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	return cfg, nil
}
