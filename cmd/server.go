package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vzahanych/activity-recommender/internal/config"
	"github.com/vzahanych/activity-recommender/internal/server"
)

const shutdownTimeout = 30 * time.Second

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the activity recommendation server",
	Long:  `Start the HTTP server exposing POST /api/v1/activities together with health and metrics endpoints.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	defer log.Sync() //nolint:errcheck
	defer shutdownTelemetry()

	log.Infow("Starting activity recommendation server",
		"config_path", configPath,
		"telemetry_enabled", cfg.Telemetry.Enabled,
		"server_port", cfg.Server.Port,
		"debug", cfg.Debug)

	zl := log.Desugar()

	rec, err := buildRecommender(cfg, zl)
	if err != nil {
		log.Errorw("Failed to build recommender", "error", err)
		return err
	}

	srv := server.NewServer(cfg, rec, zl, tele)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Errorw("Server error", "error", err)
		}
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorw("Error during server shutdown", "error", err)
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
