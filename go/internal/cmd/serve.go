package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcdev12/chipstore/go/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port != "" {
		cfg.Server.Port = port
	}
	setupLogging(cfg.Log)

	services, err := setupServices(cfg)
	if err != nil {
		return err
	}
	defer services.Close()

	server := setupServer(cfg, services)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("port", cfg.Server.Port).
		Str("publisher", string(cfg.Publisher.Kind)).
		Msg("starting chipstore")

	g, gctx := errgroup.WithContext(ctx)

	// Start gateway service (event dispatcher and session lifecycle)
	g.Go(func() error {
		return services.Gateway.Start(gctx)
	})

	// Start HTTP server
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("chipstore shutdown complete")
	return nil
}

func setupLogging(cfg config.LogConfig) {
	zerolog.SetGlobalLevel(cfg.ZerologLevel())
	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
