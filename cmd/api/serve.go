package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mauledji/cariss/internal/app"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to assemble service", zap.Error(err))
		return err
	}
	defer a.Close()

	bgCtx, cancelBackground := context.WithCancel(context.Background())
	background := a.StartBackground(bgCtx)

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		listenErr <- a.HTTP.Listen(cfg.App.Addr())
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-listenErr:
		logger.Error("fiber listen", zap.Error(err))
	}

	if shutdownErr := a.HTTP.ShutdownWithTimeout(shutdownTimeout); shutdownErr != nil {
		logger.Warn("graceful shutdown incomplete", zap.Error(shutdownErr))
	}
	cancelBackground()
	<-background
	return err
}
