package llm

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	defaultMaxRetries   = 3
	defaultInitialDelay = 2 * time.Second
	defaultMultiplier   = 2
)

// RetryConfig controls the backoff loop around a single generation call.
// The config is immutable; per-invocation state (remaining budget, current
// delay) lives in local variables inside CallWithRetry.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	Multiplier   int
}

// DefaultRetryConfig returns the production backoff: up to 3 retries with
// delays of 2s, 4s, 8s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   defaultMaxRetries,
		InitialDelay: defaultInitialDelay,
		Multiplier:   defaultMultiplier,
	}
}

// Operation is one attempt against a remote generation backend.
type Operation func() (*GenerationResult, error)

// CallWithRetry runs op, retrying transient failures with exponential backoff.
// Non-transient failures propagate unchanged on first occurrence. A transient
// failure that outlives the retry budget is wrapped with ErrQuotaExhausted so
// callers can surface it distinctly. At most MaxRetries+1 attempts are made,
// and the sleep between attempts honors ctx cancellation.
func CallWithRetry(ctx context.Context, cfg RetryConfig, op Operation) (*GenerationResult, error) {
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = defaultInitialDelay
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = defaultMultiplier
	}

	remaining := cfg.MaxRetries
	delay := cfg.InitialDelay

	for {
		result, err := op()
		if err == nil {
			return result, nil
		}
		if !IsTransient(err) {
			return nil, err
		}
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: %w", ErrQuotaExhausted, err)
		}

		log.Printf("⏳ Generation rate limited, retrying in %v (%d retries left): %v", delay, remaining, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		remaining--
		delay *= time.Duration(cfg.Multiplier)
	}
}
