package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/hwbench/internal/errors"
)

// minRAMCap is the smallest useful RAM allocation target. Below this the
// stress routine cannot allocate even a single chunk.
const minRAMCap = 8 << 20

// Validate checks a Config for values that would break a run.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig, "Configuration is nil", "")
	}

	if cfg.Source.Port <= 0 || cfg.Source.Port > 65535 {
		return invalid(fmt.Sprintf("source.port must be 1-65535, got %d", cfg.Source.Port))
	}
	if cfg.Source.Timeout <= 0 {
		return invalid("source.timeout must be positive")
	}
	if cfg.Source.Retries < 1 {
		return invalid("source.retries must be at least 1")
	}

	if cfg.Stress.RAMFraction <= 0 || cfg.Stress.RAMFraction > 1 {
		return invalid(fmt.Sprintf("stress.ram_fraction must be in (0, 1], got %g", cfg.Stress.RAMFraction))
	}
	if cfg.Stress.RAMCap < minRAMCap {
		return invalid(fmt.Sprintf("stress.ram_cap must be at least %d bytes (8 MiB)", minRAMCap))
	}
	if cfg.Stress.DiskBuffer <= 0 {
		return invalid("stress.disk_buffer must be positive")
	}
	durations := map[string]time.Duration{
		"cpu_duration":  cfg.Stress.CPUDuration,
		"ram_duration":  cfg.Stress.RAMDuration,
		"disk_duration": cfg.Stress.DiskDuration,
		"gpu_duration":  cfg.Stress.GPUDuration,
	}
	for name, d := range durations {
		if d <= 0 {
			return invalid(fmt.Sprintf("stress.%s must be positive", name))
		}
	}

	if cfg.Thresholds.VoltageMin >= cfg.Thresholds.VoltageMax {
		return invalid(fmt.Sprintf("thresholds.voltage_min (%g) must be below voltage_max (%g)",
			cfg.Thresholds.VoltageMin, cfg.Thresholds.VoltageMax))
	}

	if cfg.Output.Dir == "" {
		return invalid("output.dir must not be empty")
	}

	return nil
}

func invalid(msg string) error {
	return errors.New(errors.ErrConfig, "Invalid configuration: "+msg,
		"Fix the value in .hwbench.yaml or remove it to use the default")
}
