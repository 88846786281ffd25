package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net"
	"syscall"
	"time"

	"github.com/goran-ethernal/ChainFirehose/pkg/config"
)

// jitterFraction spreads retries of concurrent callers by up to ±25% of the delay.
const jitterFraction = 0.25

// shouldRetry reports whether a failed node call may succeed when repeated.
// Answers the node gave on purpose (unknown method, bad params, missing block) are final.
func shouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrBlockNotFound) {
		return false
	}

	switch errorType(err) {
	case "timeout", "rate_limited", "server_error":
		return true
	case "method_not_found", "rpc_error", "http_error":
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// retryDelay is the wait before the n-th retry (n >= 1), growing geometrically from
// the initial backoff up to the configured cap.
func retryDelay(n int, cfg *config.RetryConfig) time.Duration {
	delay := float64(cfg.InitialBackoff.Duration) * math.Pow(cfg.BackoffMultiplier, float64(n-1))
	delay = min(delay, float64(cfg.MaxBackoff.Duration))
	delay += delay * jitterFraction * (2*rand.Float64() - 1) //nolint:gosec

	return time.Duration(max(delay, 0))
}

// withRetry runs fn until it succeeds, fails with an error that is not worth retrying,
// or cfg.MaxAttempts is used up. A nil cfg runs fn once.
func withRetry(ctx context.Context, cfg *config.RetryConfig, method string, fn func() error) error {
	if cfg == nil {
		return fn()
	}

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		if !shouldRetry(err) {
			return err
		}
		if attempt >= cfg.MaxAttempts {
			return fmt.Errorf("%s failed after %d attempts: %w", method, attempt, err)
		}

		timer := time.NewTimer(retryDelay(attempt, cfg))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s retry interrupted: %w (last error: %w)", method, ctx.Err(), err)
		case <-timer.C:
		}

		nodeCallRetries.WithLabelValues(method).Inc()
	}
}
