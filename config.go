package webcollage

import "time"

// Default crawl tunables.
const (
	DefaultWorkers      = 19
	DefaultCapacity     = 25
	DefaultDelay        = 100 * time.Millisecond
	DefaultMaxScale     = 1.0 / 3.0
	DefaultFetchTimeout = 10 * time.Second
	DefaultMaxBodyBytes = 16 << 20
)

// Config holds the tunables of a crawl. It is fixed once the crawl starts.
type Config struct {
	// Workers is the number of parallel fetch workers.
	Workers int

	// Capacity is the number of decoded images the delivery channel holds
	// before workers block.
	Capacity int

	// Delay is the minimum interval between two images reaching the sink.
	Delay time.Duration

	// MaxScale is the largest fraction of the display, per axis, that a
	// single image may cover. Only display sinks read it.
	MaxScale float64

	// FetchTimeout bounds a single fetch including reading its body.
	FetchTimeout time.Duration

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Workers:      DefaultWorkers,
		Capacity:     DefaultCapacity,
		Delay:        DefaultDelay,
		MaxScale:     DefaultMaxScale,
		FetchTimeout: DefaultFetchTimeout,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return Errorf(EINVALID, "worker count must be positive, got %d", c.Workers)
	}
	if c.Capacity <= 0 {
		return Errorf(EINVALID, "channel capacity must be positive, got %d", c.Capacity)
	}
	if c.Delay < 0 {
		return Errorf(EINVALID, "delivery delay must not be negative, got %s", c.Delay)
	}
	if c.MaxScale <= 0 || c.MaxScale > 1 {
		return Errorf(EINVALID, "max scale must be in (0, 1], got %g", c.MaxScale)
	}
	if c.FetchTimeout <= 0 {
		return Errorf(EINVALID, "fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.MaxBodyBytes <= 0 {
		return Errorf(EINVALID, "max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}
