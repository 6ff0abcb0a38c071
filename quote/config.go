package quote

import (
	"time"
)

// Config of a quote boundary.
type Config struct {
	// Quiet is how long input has to stay unchanged before a quote is
	// requested.
	Quiet time.Duration `yaml:"quiet"`
	// Rate caps quote requests per second; zero disables the limit.
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
	// Retries is the number of additional attempts after a failed fetch.
	Retries    int           `yaml:"retries"`
	MinBackoff time.Duration `yaml:"min_backoff"`
	MaxBackoff time.Duration `yaml:"max_backoff"`
	// MaxAge is how long a quote stays usable after it was fetched.
	MaxAge time.Duration `yaml:"max_age"`
}

var DefaultConfig = Config{
	Quiet:      300 * time.Millisecond,
	Rate:       5,
	Burst:      1,
	Retries:    3,
	MinBackoff: 100 * time.Millisecond,
	MaxBackoff: 2 * time.Second,
	MaxAge:     30 * time.Second,
}
