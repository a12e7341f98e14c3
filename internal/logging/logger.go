// Package logging defines the structured logger used across the server.
// The interface is deliberately small so handlers and services stay
// decoupled from the concrete backend.
package logging

import "context"

// Logger logs structured key-value pairs at the usual levels. Args are
// alternating keys and values, as in slog:
//
//	log.Info(ctx, "listening", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a derived logger that attaches the given pairs to
	// every record.
	With(args ...any) Logger
}
