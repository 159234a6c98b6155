package cmd

import (
	"fmt"
	"os"

	"atlan-sdk/core/client"
	"atlan-sdk/core/config"
	"atlan-sdk/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "atlan",
	Short: "Metadata catalog toolkit",
	Long: `atlan manages assets in a metadata catalog: bulk upserts with batching,
index searches, crawler workflows and replay of failed saves.
It also serves an in-memory catalog for local development.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
}

// setup loads configuration and creates the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// newAPI creates the catalog API client.
func newAPI(cfg *config.Config, l *zap.Logger) (*client.Client, error) {
	api, err := client.New(cfg.Client, client.WithLogger(l))
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}
	return api, nil
}
