package throttle

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func nilLogFn() *slog.Logger { return nil }

func TestNewRoundTripper_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		cfg    Config
		expErr error
	}{
		{name: "invalid RPS (zero)", cfg: Config{RPS: 0, Burst: 10}, expErr: ErrMustBePositive},
		{name: "invalid RPS (negative)", cfg: Config{RPS: -5, Burst: 10}, expErr: ErrMustBePositive},
		{name: "invalid Burst (zero)", cfg: Config{RPS: 10, Burst: 0}, expErr: ErrMustBePositive},
		{name: "invalid Burst (negative)", cfg: Config{RPS: 10, Burst: -5}, expErr: ErrMustBePositive},
		{name: "valid input", cfg: Config{RPS: 10, Burst: 20}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rt, err := NewRoundTripper(tc.cfg, nilLogFn, http.DefaultTransport)

			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
				return
			}

			if err != nil {
				t.Errorf("exp nil err, got: %v", err)
			}
			if rt == nil {
				t.Error("exp non-nil RoundTripper")
			}
		})
	}
}

func TestRoundTrip_PassesThrough(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	rt, err := NewRoundTripper(Config{RPS: 100, Burst: 10}, nilLogFn, http.DefaultTransport)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, ts.URL, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestRoundTrip_ContextAlreadyEnded(t *testing.T) {
	rt, err := NewRoundTripper(Config{RPS: 1, Burst: 1}, nilLogFn, http.DefaultTransport)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unreachable.test", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if _, err := rt.RoundTrip(req); !errors.Is(err, ErrContextEnded) {
		t.Errorf("exp ErrContextEnded; got: %v", err)
	}
}

func TestRoundTrip_WaitInterrupted(t *testing.T) {
	rt, err := NewRoundTripper(Config{RPS: 1, Burst: 1}, nilLogFn, http.DefaultTransport)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Exhaust the single token, then let the next wait hit its deadline.
	tr := rt.(*transport)
	if !tr.limiter.Allow() {
		t.Fatal("expected the first token to be available")
	}

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unreachable.test", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if _, err := rt.RoundTrip(req); !errors.Is(err, ErrWaitFailed) {
		t.Errorf("exp ErrWaitFailed; got: %v", err)
	}
}
