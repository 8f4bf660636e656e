package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// startHTTPServer serves router until ctx is canceled or the listener fails,
// then shuts down within the configured timeout and releases resources.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var listenErr error
	select {
	case <-ctx.Done():
		app.logger.Info("Shutting down server...")
	case listenErr = <-serverErr:
		if listenErr != nil {
			app.logger.Error("Server failed", "error", listenErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout())
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		app.logger.Error("Server shutdown failed", "error", shutdownErr)
	}

	app.cleanup()

	if listenErr != nil {
		return listenErr
	}
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown failed: %w", shutdownErr)
	}
	app.logger.Info("Server shutdown completed")
	return nil
}
