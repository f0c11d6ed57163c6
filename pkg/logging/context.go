package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithLogger stores logger in ctx. A nil logger stores the default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or the default.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok && l != nil {
			return l
		}
	}
	return Default()
}

// WithStage tags the context logger with a pipeline stage.
func WithStage(ctx context.Context, stage string) context.Context {
	return with(ctx, "stage", stage)
}

// WithService tags the context logger with a service id.
func WithService(ctx context.Context, id string) context.Context {
	return with(ctx, "service_id", id)
}

// WithPath tags the context logger with a file or directory.
func WithPath(ctx context.Context, path string) context.Context {
	return with(ctx, "path", path)
}

func with(ctx context.Context, key, value string) context.Context {
	l := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &l)
}
