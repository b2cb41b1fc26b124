package client

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for [Build], configuring the ambient
// pieces of a client that are not part of its [ClientSettings].
type Option func(*options) error

type options struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// WithLogger injects a custom [slog.Logger] into the built client.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithTracer records construction under the given tracer. A no-op tracer
// is used unless set.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}
