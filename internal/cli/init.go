package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/errors"
	"github.com/rileyhilliard/hwbench/internal/source"
	"github.com/rileyhilliard/hwbench/internal/ui"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .hwbench.yaml configuration file",
	Long: `Interactively create a configuration file in the current directory.
Prompts for the monitoring endpoint port and stress durations, probes
the endpoint, and writes .hwbench.yaml.

Examples:
  hwbench init
  hwbench init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config without asking")
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Overwrite bool // Overwrite existing config without asking
}

// Init creates a new .hwbench.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		var overwrite bool

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.Default()

	portStr := strconv.Itoa(cfg.Source.Port)
	cpuDuration := cfg.Stress.CPUDuration.String()
	ramDuration := cfg.Stress.RAMDuration.String()
	outputDir := cfg.Output.Dir

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monitoring endpoint port").
				Description("Port the hardware monitor serves data.json on").
				Placeholder("8085").
				Value(&portStr).
				Validate(func(s string) error {
					p, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || p < 1 || p > 65535 {
						return fmt.Errorf("port must be between 1 and 65535")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("CPU stress duration").
				Description("How long to load the CPU (e.g. 60s, 2m)").
				Placeholder("1m0s").
				Value(&cpuDuration).
				Validate(validateDuration),
			huh.NewInput().
				Title("RAM stress duration").
				Description("How long to hold allocated memory").
				Placeholder("1m0s").
				Value(&ramDuration).
				Validate(validateDuration),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Description("Where reports and logs are written").
				Placeholder(".").
				Value(&outputDir),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --force with defaults")
	}

	cfg.Source.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))
	cfg.Stress.CPUDuration, _ = time.ParseDuration(strings.TrimSpace(cpuDuration))
	cfg.Stress.RAMDuration, _ = time.ParseDuration(strings.TrimSpace(ramDuration))
	if strings.TrimSpace(outputDir) != "" {
		cfg.Output.Dir = strings.TrimSpace(outputDir)
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	// Probe the endpoint before saving. A failure is not fatal: the
	// monitor may simply not be running yet.
	fmt.Println()
	if _, err := source.Probe(cfg.Source.Host, cfg.Source.Port, cfg.Source.Timeout); err != nil {
		fmt.Printf("%s Endpoint %s is not reachable yet: %v\n", ui.SymbolWarning, cfg.SourceURL(), err)
		fmt.Println("  Saving anyway. Start the hardware monitor before running a benchmark.")
	} else {
		fmt.Printf("%s Endpoint %s is reachable\n", ui.SymbolSuccess, cfg.SourceURL())
	}
	fmt.Println()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# Hardware Bench configuration
# Run 'hwbench run' to stress-test and generate a report
# See: https://github.com/rileyhilliard/hwbench for documentation

`
	content := header + string(data)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  hwbench doctor    - Check the environment")
	fmt.Println("  hwbench snapshot  - Capture readings without load")
	fmt.Println("  hwbench run       - Run the full benchmark")

	return nil
}

func validateDuration(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration (use forms like 30s or 2m)")
	}
	if d <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	return nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(force bool) error {
	return Init(InitOptions{Overwrite: force})
}
