package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kendall-kelly/orders-api/config"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	config.SetConfig(cfg)
	config.ConfigureLogger(cfg)

	log.WithField("env", cfg.GoEnv).Info("Starting Orders API server...")

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Auto-migrate database models
	if err := config.MigrateDatabase(config.GetDB()); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}
	log.Info("Database migration completed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
	log.Info("Orders API stopped")
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests
func serve(ctx context.Context, cfg *config.Config) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
