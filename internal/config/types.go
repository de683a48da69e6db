package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config is the complete hwbench configuration. It is constructed once at
// process start (from compiled-in defaults, optionally overridden by a
// .hwbench.yaml file) and passed into every component; nothing mutates it
// after construction.
type Config struct {
	Version    int              `yaml:"version" mapstructure:"version"`
	Source     SourceConfig     `yaml:"source" mapstructure:"source"`
	Stress     StressConfig     `yaml:"stress" mapstructure:"stress"`
	Thresholds ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// SourceConfig describes the hardware-monitor HTTP endpoint.
type SourceConfig struct {
	// Host of the monitor endpoint. The monitor only binds locally, so this
	// is localhost in practice.
	Host string `yaml:"host" mapstructure:"host"`

	// Port the monitor's web server listens on.
	Port int `yaml:"port" mapstructure:"port"`

	// Timeout for a single fetch of the sensor tree.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Retries is how many reachability probes to attempt at startup.
	Retries int `yaml:"retries" mapstructure:"retries"`

	// RetryDelay is the pause between startup probes.
	RetryDelay time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
}

// StressConfig controls the synthetic load routines.
type StressConfig struct {
	CPUDuration  time.Duration `yaml:"cpu_duration" mapstructure:"cpu_duration"`
	RAMDuration  time.Duration `yaml:"ram_duration" mapstructure:"ram_duration"`
	DiskDuration time.Duration `yaml:"disk_duration" mapstructure:"disk_duration"`
	GPUDuration  time.Duration `yaml:"gpu_duration" mapstructure:"gpu_duration"`

	// RAMFraction of total physical memory to allocate (before the cap).
	RAMFraction float64 `yaml:"ram_fraction" mapstructure:"ram_fraction"`

	// RAMCap is the absolute upper bound on the allocation, in bytes.
	RAMCap uint64 `yaml:"ram_cap" mapstructure:"ram_cap"`

	// DiskBuffer is the size of the write buffer for the disk routine, in bytes.
	DiskBuffer int `yaml:"disk_buffer" mapstructure:"disk_buffer"`

	// MinFreeDisk is the free space required on the target volume before the
	// disk routine will run, in bytes.
	MinFreeDisk uint64 `yaml:"min_free_disk" mapstructure:"min_free_disk"`

	// DiskPath is the volume the disk routine writes to.
	DiskPath string `yaml:"disk_path" mapstructure:"disk_path"`
}

// ThresholdsConfig holds the alert thresholds. Values above a threshold are
// reported as critical; voltages outside [VoltageMin, VoltageMax] are flagged.
type ThresholdsConfig struct {
	CPUTemp    float64 `yaml:"cpu_temp" mapstructure:"cpu_temp"`
	GPUTemp    float64 `yaml:"gpu_temp" mapstructure:"gpu_temp"`
	DiskLoad   float64 `yaml:"disk_load" mapstructure:"disk_load"`
	RAMLoad    float64 `yaml:"ram_load" mapstructure:"ram_load"`
	Power      float64 `yaml:"power" mapstructure:"power"`
	VoltageMin float64 `yaml:"voltage_min" mapstructure:"voltage_min"`
	VoltageMax float64 `yaml:"voltage_max" mapstructure:"voltage_max"`
}

// OutputConfig controls where run artifacts land.
type OutputConfig struct {
	// Dir receives the HTML reports and the log file.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// OpenReports opens generated reports in the default viewer on success.
	OpenReports bool `yaml:"open_reports" mapstructure:"open_reports"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Source: SourceConfig{
			Host:       "localhost",
			Port:       8085,
			Timeout:    5 * time.Second,
			Retries:    3,
			RetryDelay: 2 * time.Second,
		},
		Stress: StressConfig{
			CPUDuration:  60 * time.Second,
			RAMDuration:  60 * time.Second,
			DiskDuration: 30 * time.Second,
			GPUDuration:  30 * time.Second,
			RAMFraction:  0.75,
			RAMCap:       1 << 30,   // 1 GiB
			DiskBuffer:   4 << 20,   // 4 MiB
			MinFreeDisk:  500 << 20, // 500 MiB
			DiskPath:     ".",
		},
		Thresholds: ThresholdsConfig{
			CPUTemp:    85,
			GPUTemp:    90,
			DiskLoad:   90,
			RAMLoad:    90,
			Power:      300,
			VoltageMin: 3.0,
			VoltageMax: 13.0,
		},
		Output: OutputConfig{
			Dir:         ".",
			OpenReports: true,
		},
	}
}

// SourceURL returns the data endpoint URL.
func (c *Config) SourceURL() string {
	return fmt.Sprintf("http://%s/data.json", net.JoinHostPort(c.Source.Host, strconv.Itoa(c.Source.Port)))
}
