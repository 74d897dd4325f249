package main

import (
	"fmt"
	"os"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/advisordesk/report-engine/pkg/projections/export"
	"github.com/advisordesk/report-engine/pkg/runtime/terminal"
	"github.com/advisordesk/report-engine/pkg/services/aggregate"
	"github.com/advisordesk/report-engine/pkg/services/config"
	"github.com/advisordesk/report-engine/pkg/services/metrics"
	"github.com/advisordesk/report-engine/pkg/services/session"
	"github.com/advisordesk/report-engine/pkg/sources"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	clientID string
	outPath  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "report",
		Short: "Build one client report and print or export it",
		RunE:  runReport,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml", "Path to the engine config file")
	rootCmd.Flags().StringVar(&clientID, "client", "", "Client identifier")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the export document to this file instead of printing")
	_ = rootCmd.MarkFlagRequired("client")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runReport(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

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

	sess, err := sessions.GetReport(ctx, clientID, true)
	if err != nil {
		return err
	}

	if outPath == "" {
		return terminal.NewReporter(os.Stdout).Handle(sess)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	reporter := export.NewReporter()
	if err := reporter.Render(f, sess); err != nil {
		return err
	}
	logger.Info().Str("file", outPath).Str("suggested_name", reporter.Filename(sess)).Msg("report exported")
	return nil
}
