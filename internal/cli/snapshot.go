package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hwbench/internal/alert"
	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/errors"
	"github.com/rileyhilliard/hwbench/internal/logger"
	"github.com/rileyhilliard/hwbench/internal/report"
	"github.com/rileyhilliard/hwbench/internal/sensor"
	"github.com/rileyhilliard/hwbench/internal/source"
	"github.com/rileyhilliard/hwbench/internal/ui"
)

// snapshotCmd fetches readings and writes a report without any stress load.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture current readings without stress testing",
	Long: `Fetch the sensor tree once, classify the readings, evaluate alerts,
and write a summary report. No synthetic load is generated.

Examples:
  hwbench snapshot`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(configFlag)
	},
}

func snapshotCommand(configPath string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrReport,
			"Cannot create output directory "+cfg.Output.Dir,
			"Check permissions or change output.dir")
	}

	paths := report.PathsFor(cfg.Output.Dir, time.Now())
	log, err := logger.NewFileLogger(paths.Log)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrReport,
			"Cannot create log file", "Check output directory permissions")
	}
	defer log.Close()

	boot := logger.Default()
	logger.SetDefault(log)
	defer logger.SetDefault(boot)

	ctx := context.Background()
	client := source.NewClient(cfg)

	root, err := client.Fetch(ctx)
	if err != nil {
		return err
	}
	readings := sensor.NewClassifier(cfg.Thresholds, log).Flatten(root)
	alerts := alert.Evaluate(readings, nil, cfg.Thresholds)

	hostname, _ := os.Hostname()
	if err := report.WriteSummary(paths.Summary, report.SummaryData{
		GeneratedAt: time.Now(),
		Hostname:    hostname,
		Groups:      report.GroupByKind(readings),
		Alerts:      alerts,
	}); err != nil {
		return err
	}
	log.Info("snapshot report written to %s", paths.Summary)

	ui.RenderSummary(os.Stdout, nil, alerts)
	fmt.Printf("\n%d readings captured\nReport: %s\n", len(readings), paths.Summary)
	return nil
}
