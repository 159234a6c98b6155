package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"atlan-sdk/feature/stub"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the in-memory stub catalog",
	Long: `Starts an HTTP server implementing the entity, search and workflow
endpoints against an in-memory store. Nothing is persisted across restarts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app, err := stub.NewApp(stub.NewStore(), cfg.Server, logg)
		if err != nil {
			return err
		}

		go func() {
			logg.Info("Starting stub catalog", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
