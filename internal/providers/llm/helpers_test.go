package llm

import (
	"time"

	"github.com/sandevgo/sorcerer/pkg/retry"
)

func fastRetrier() *retry.Retrier {
	cfg := retry.NewDefaultConfig()
	cfg.MaxRetries = 1
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	cfg.Jitter = 0
	cfg.Retryable = isRetryable
	return retry.NewRetrier(cfg)
}
