package retry

import (
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultDelay    = 200 * time.Millisecond
	defaultMaxDelay = 2 * time.Second
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS"`
	Delay    time.Duration `env:"DELAY"`
	MaxDelay time.Duration `env:"MAX_DELAY"`
}

// ToRetryOptions converts the config into retry-go options. Attempts are
// passed separately to the transport, so only the backoff shape is returned.
func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(rc.Delay),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}
