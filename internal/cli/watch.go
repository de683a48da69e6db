package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/errors"
	"github.com/rileyhilliard/hwbench/internal/logger"
	"github.com/rileyhilliard/hwbench/internal/sensor"
	"github.com/rileyhilliard/hwbench/internal/source"
	"github.com/rileyhilliard/hwbench/internal/watch"
)

const minWatchInterval = 500 * time.Millisecond

var watchInterval time.Duration

// watchCmd shows a live terminal view of the sensor readings.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch readings update live in the terminal",
	Long: `Poll the monitoring endpoint on an interval and render the readings
in a live terminal view with per-sensor history sparklines.

Press q or Ctrl+C to quit.

Examples:
  hwbench watch
  hwbench watch --interval 5s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(configFlag, watchInterval)
	},
}

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 2*time.Second, "refresh interval")
}

func watchCommand(configPath string, interval time.Duration) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if interval < minWatchInterval {
		return errors.New(errors.ErrConfig,
			"Refresh interval is too short",
			"Use an interval of at least "+minWatchInterval.String())
	}

	client := source.NewClient(cfg)
	classifier := sensor.NewClassifier(cfg.Thresholds, logger.Noop())
	sample := func(ctx context.Context) ([]sensor.Reading, error) {
		root, err := client.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return classifier.Flatten(root), nil
	}

	return watch.Run(sample, interval)
}
