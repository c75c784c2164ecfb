package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all client settings, populated from the environment.
type Config struct {
	AppName         string        `env:"WEDVENUE_APP_NAME" envDefault:"WedVenue"`
	APIBaseURL      string        `env:"WEDVENUE_API_URL" envDefault:"http://localhost:8000/api"`
	DataDir         string        `env:"WEDVENUE_DATA_DIR" envDefault:"."`
	SessionMaxAge   time.Duration `env:"WEDVENUE_SESSION_MAX_AGE" envDefault:"2h"`
	StorePassphrase string        `env:"WEDVENUE_STORE_PASSPHRASE"`
	RequestTimeout  time.Duration `env:"WEDVENUE_REQUEST_TIMEOUT" envDefault:"10s"`
	Debug           bool          `env:"WEDVENUE_DEBUG"`
}

// New parses the configuration from environment variables.
func New() (Config, error) {
	return env.ParseAs[Config]()
}
