package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vzahanych/activity-recommender/internal/config"
	"github.com/vzahanych/activity-recommender/internal/recommender"
	"github.com/vzahanych/activity-recommender/internal/service"
	"github.com/vzahanych/activity-recommender/pkg/logger"
	"github.com/vzahanych/activity-recommender/pkg/telemetry"
)

var (
	configPath string
	log        *logger.Logger
	tele       *telemetry.Telemetry
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Weather-based activity recommender",
		Long:  `A service that looks up the current weather for a city and asks a language model for activities that suit it.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices(cmd.Context())
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")

	cmd.AddCommand(serverCmd)
	cmd.AddCommand(suggestCmd())

	return cmd
}

func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		if log != nil {
			log.Infow("Received shutdown signal", "signal", sig.String())
		}
		cancel()
	}()

	return rootCmd().ExecuteContext(ctx)
}

func initializeServices(ctx context.Context) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Missing credentials are fatal before anything is served
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// 3. Set config
	// Having config in atomic allows changing it during runtime
	config.SetConfig(cfg)

	// 4. Initialize logger
	log, err = logger.New(cfg.Logging, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	tele, err = telemetry.New(ctx, cfg.Telemetry, cfg.Version)
	if err != nil {
		log.Warnw("Failed to initialize telemetry, continuing without tracing", "error", err)
		tele, _ = telemetry.New(ctx, config.TelemetryConfig{}, cfg.Version)
	}

	return nil
}

func buildRecommender(cfg *config.Config, zl *zap.Logger) (*recommender.Recommender, error) {
	weather, err := service.NewOpenWeatherServiceWithConfig(cfg.Weather, zl, tele)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather client: %w", err)
	}

	suggester, err := service.NewOpenAISuggesterWithConfig(cfg.LLM, zl, tele)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity suggester: %w", err)
	}

	return recommender.NewRecommender(weather, suggester, zl, tele), nil
}

func shutdownTelemetry() {
	if err := tele.Shutdown(context.Background()); err != nil {
		log.Warnw("Error during telemetry shutdown", "error", err)
	}
}
