package main

import (
	"fmt"
	"os"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/advisordesk/report-engine/pkg/server"
	"github.com/advisordesk/report-engine/pkg/services/aggregate"
	"github.com/advisordesk/report-engine/pkg/services/config"
	"github.com/advisordesk/report-engine/pkg/services/metrics"
	"github.com/advisordesk/report-engine/pkg/services/session"
	"github.com/advisordesk/report-engine/pkg/sources"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the client report engine web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml",
		"Path to the engine config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry := sources.NewRegistry()
	for _, id := range domain.ConfiguredSources() {
		src := sources.NewHTTPSource(id, cfg.Sources.Endpoints[string(id)])
		if err := registry.Register(src); err != nil {
			return fmt.Errorf("failed to register source %q: %w", id, err)
		}
	}

	aggregator := aggregate.NewAggregator(registry, cfg.Sources.Timeout())
	calculator := metrics.NewCalculator(cfg.Thresholds)
	sessions := session.NewManager(aggregator, calculator, cfg.Session.CacheTTL())

	addr := cfg.Server.Addr
	if envAddr := os.Getenv("SERVER_ADDR"); envAddr != "" {
		addr = envAddr
	}

	logger.Info().
		Int("sources", len(registry.All())).
		Str("addr", addr).
		Msg("report engine configured")

	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Sessions: sessions,
			Logger:   logger,
		},
	})

	return api.Start()
}
