// Package throttle provides an [http.RoundTripper] that rate-limits
// outbound HTTP requests with a token bucket from [golang.org/x/time/rate].
//
// The client construction pipeline wraps the finished transport with
// [NewRoundTripper] when throttle settings are present. Requests beyond
// the configured rate block until a token frees up or their context ends.
package throttle

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrMustBePositive rejects non-positive rate or burst values.
	ErrMustBePositive = errors.New("must be greater than zero")
	// ErrWaitFailed wraps a limiter wait that ended before a token freed up.
	ErrWaitFailed = errors.New("limiter wait failed")
	// ErrContextEnded wraps a request context that expired around the wait.
	ErrContextEnded = errors.New("throttle context ended")
)

// Config carries the token-bucket parameters: sustained requests per
// second and burst capacity.
type Config struct {
	RPS   int
	Burst int
}

// transport rate-limits calls into the next RoundTripper.
type transport struct {
	limiter *rate.Limiter
	cfg     Config
	next    http.RoundTripper
	logFn   func() *slog.Logger
}

// NewRoundTripper wraps next in a token-bucket limiter. logFn resolves
// the logger lazily at request time so the caller's logger can be swapped
// in after construction; a nil-returning logFn silences wait logging.
func NewRoundTripper(cfg Config, logFn func() *slog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if cfg.RPS <= 0 || cfg.Burst <= 0 {
		return nil, fmt.Errorf("rps[%d] and burst[%d] %w", cfg.RPS, cfg.Burst, ErrMustBePositive)
	}

	t := &transport{
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		cfg:     cfg,
		next:    next,
		logFn:   logFn,
	}

	return t, nil
}

func (t *transport) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	var waited time.Duration
	logger := t.logFn()
	if logger != nil && !t.limiter.Allow() {
		logger.Info("throttle tokens exhausted", "rate", t.cfg.RPS, "burst", t.cfg.Burst, "path", r.URL.Path)

		defer func() {
			logger.Info("throttle wait complete", "waited", waited.String(), "rate", t.cfg.RPS, "burst", t.cfg.Burst)
		}()
	}

	start := time.Now()

	err := t.limiter.Wait(ctx)
	waited = time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitFailed, err)
	}

	if err := ctx.Err(); err != nil { // Check context hasn't expired again.
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}
