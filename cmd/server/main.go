// Command server runs the reference rental-management web application.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/miniapartment/e2e/internal/config"
	"github.com/miniapartment/e2e/internal/logger"
	"github.com/miniapartment/e2e/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.CI})

	srv, err := server.New(ctx, cfg, log, server.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Str("db", cfg.DBPath).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
