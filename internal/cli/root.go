// Package cli wires the hwbench commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configFlag is the persistent --config flag value.
var configFlag string

// rootCmd is the base command; running it bare prints help.
var rootCmd = &cobra.Command{
	Use:   "hwbench",
	Short: "Hardware sensor monitoring and stress testing",
	Long: `hwbench polls a local hardware-monitor endpoint, runs short synthetic
stress tests against CPU, RAM, disk, and GPU, and renders the collected
readings and outcomes into HTML reports.

Examples:
  hwbench run
  hwbench snapshot
  hwbench watch --interval 2s
  hwbench doctor`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default .hwbench.yaml)")
	rootCmd.AddCommand(runCmd, snapshotCmd, watchCmd, doctorCmd, initCmd, versionCmd)
}

// Execute runs the CLI. Any unrecovered error exits with code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
