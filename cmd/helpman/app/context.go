package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals creates a context that is cancelled when the application
// receives an interrupt or termination signal. Cancelling mid-run aborts
// assembly before any output file is written.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Context creates a new context with signal handling for the application.
func Context() (context.Context, context.CancelFunc) {
	return ContextWithSignals(context.Background())
}
