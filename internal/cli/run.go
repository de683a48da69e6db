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
	"github.com/rileyhilliard/hwbench/internal/stress"
	"github.com/rileyhilliard/hwbench/internal/ui"
)

var runSkipOpen bool

// runCmd executes the full benchmark pipeline.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run stress tests and generate reports",
	Long: `Run the full benchmark: probe the hardware monitor, stress CPU, RAM,
disk, and GPU in sequence, evaluate readings against thresholds, and write
a summary report plus a raw sensor-tree report.

The process exits 0 even when critical alerts are present; only an
unrecovered pipeline failure exits non-zero.

Examples:
  hwbench run
  hwbench run --no-open`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(configFlag, runSkipOpen)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runSkipOpen, "no-open", false, "do not open generated reports in the viewer")
}

// treeResult carries the background tree fetch outcome.
type treeResult struct {
	root *source.RawNode
	err  error
}

// runCommand implements the run pipeline.
func runCommand(configPath string, skipOpen bool) error {
	// Until the log file exists, breadcrumbs go through the env-gated
	// stderr logger (HWBENCH_DEBUG).
	boot := logger.Default()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	boot.Debug("config loaded, source %s, output dir %s", cfg.SourceURL(), cfg.Output.Dir)

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrReport,
			"Cannot create output directory "+cfg.Output.Dir,
			"Check permissions or change output.dir")
	}

	start := time.Now()
	paths := report.PathsFor(cfg.Output.Dir, start)

	// No log file, no run: the log is part of the deliverable.
	log, err := logger.NewFileLogger(paths.Log)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrReport,
			"Cannot create log file", "Check output directory permissions")
	}
	defer log.Close()

	// The run log becomes the process-wide default once it exists.
	logger.SetDefault(log)
	defer logger.SetDefault(boot)

	log.Info("hwbench run starting, source %s", cfg.SourceURL())

	if err := source.WaitReachable(cfg.Source.Host, cfg.Source.Port, cfg.Source.Timeout,
		cfg.Source.Retries, cfg.Source.RetryDelay, log); err != nil {
		return err
	}

	ctx := context.Background()
	client := source.NewClient(cfg)
	classifier := sensor.NewClassifier(cfg.Thresholds, log)
	sample := func(ctx context.Context) ([]sensor.Reading, error) {
		root, err := client.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return classifier.Flatten(root), nil
	}

	// Fire the raw-tree fetch now and collect it just before rendering;
	// its failure only costs us the optional tree report.
	treeCh := make(chan treeResult, 1)
	go func() {
		root, err := client.Fetch(ctx)
		treeCh <- treeResult{root: root, err: err}
	}()

	pre, err := sample(ctx)
	if err != nil {
		return err
	}
	log.Info("collected %d readings before stress", len(pre))

	results, stressErrs := stress.NewOrchestrator(cfg, sample, log).Run(ctx)

	post, err := sample(ctx)
	if err != nil {
		return err
	}
	log.Info("collected %d readings after stress", len(post))

	alerts := alert.Evaluate(post, stressErrs, cfg.Thresholds)
	for _, a := range alerts {
		log.Warn("alert: %s", a)
	}

	hostname, _ := os.Hostname()
	if err := report.WriteSummary(paths.Summary, report.SummaryData{
		GeneratedAt: time.Now(),
		Hostname:    hostname,
		Results:     results,
		Groups:      report.GroupByKind(post),
		Alerts:      alerts,
	}); err != nil {
		return err
	}
	log.Info("summary report written to %s", paths.Summary)

	treeWritten := false
	if tree := <-treeCh; tree.err != nil {
		log.Warn("sensor tree fetch failed, skipping tree report: %v", tree.err)
	} else if err := report.WriteTree(paths.Tree, report.TreeData{GeneratedAt: time.Now(), Root: tree.root}); err != nil {
		log.Warn("sensor tree report failed: %v", err)
	} else {
		treeWritten = true
		log.Info("sensor tree report written to %s", paths.Tree)
	}

	if cfg.Output.OpenReports && !skipOpen {
		openReport(paths.Summary, log)
		if treeWritten {
			openReport(paths.Tree, log)
		}
	}

	ui.RenderSummary(os.Stdout, results, alerts)
	fmt.Printf("\nReport: %s\nLog:    %s\n", paths.Summary, paths.Log)
	return nil
}

func openReport(path string, log logger.Logger) {
	if err := report.Open(path); err != nil {
		log.Warn("could not open %s in viewer: %v", path, err)
	}
}
