package writequeue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups all tunables. Values are taken from environment
// variables with the prefix "WQ_". Example: WQ_MAX_ATTEMPTS=5 .
type Config struct {
	// ErrorHandler is called synchronously after a write gives up with a
	// non-nil error. Leave nil if you do not care.
	ErrorHandler func(error) `envconfig:"-"`

	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"8"`
	BaseBackoff time.Duration `envconfig:"BASE_BACKOFF" default:"100ms"`
	MaxInterval time.Duration `envconfig:"MAX_INTERVAL" default:"20s"`
}

// LoadConfig populates Config from environment variables (prefix WQ_).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("WQ", &c)
}
