package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mauledji/cariss/internal/config"
	"github.com/mauledji/cariss/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:          "cariss",
	Short:        "Authentication gateway",
	Long:         "Login, registration and bearer token enforcement for the cariss API",
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger shared by all commands.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
