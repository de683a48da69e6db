package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/source"
)

// latencyPrecision rounds probe latencies for display.
const latencyPrecision = time.Millisecond

// SystemInfoCheck reports the platform and logical core count. It is
// informational and only fails when the stats cannot be read at all.
type SystemInfoCheck struct {
	Info   func() (*host.InfoStat, error)
	Counts func(logical bool) (int, error)
}

func (c *SystemInfoCheck) Name() string     { return "system_info" }
func (c *SystemInfoCheck) Category() string { return "SYSTEM" }

func (c *SystemInfoCheck) Run() CheckResult {
	info := c.Info
	if info == nil {
		info = host.Info
	}
	counts := c.Counts
	if counts == nil {
		counts = cpu.Counts
	}

	hi, err := info()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("Cannot read host info: %v", err),
		}
	}
	cores, err := counts(true)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("Cannot read CPU count: %v", err),
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("%s %s (%s), %d logical cores",
			hi.Platform, hi.PlatformVersion, hi.KernelArch, cores),
	}
}

// SourceCheck probes the hardware-monitor endpoint once.
type SourceCheck struct {
	Cfg *config.Config
}

func (c *SourceCheck) Name() string     { return "source_reachable" }
func (c *SourceCheck) Category() string { return "SOURCE" }

func (c *SourceCheck) Run() CheckResult {
	latency, err := source.Probe(c.Cfg.Source.Host, c.Cfg.Source.Port, c.Cfg.Source.Timeout)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Hardware monitor not reachable at %s:%d", c.Cfg.Source.Host, c.Cfg.Source.Port),
			Suggestion: "Start the monitor and enable its built-in web server",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Hardware monitor reachable (%s)", latency.Round(latencyPrecision)),
	}
}

// MemoryCheck verifies free memory covers the RAM stress target.
type MemoryCheck struct {
	Cfg *config.Config

	// Stat is overridable for tests; defaults to gopsutil.
	Stat func() (*mem.VirtualMemoryStat, error)
}

func (c *MemoryCheck) Name() string     { return "free_memory" }
func (c *MemoryCheck) Category() string { return "RESOURCES" }

func (c *MemoryCheck) Run() CheckResult {
	stat := c.Stat
	if stat == nil {
		stat = mem.VirtualMemory
	}
	vm, err := stat()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("Cannot read memory stats: %v", err),
		}
	}

	target := uint64(float64(vm.Total) * c.Cfg.Stress.RAMFraction)
	if target > c.Cfg.Stress.RAMCap {
		target = c.Cfg.Stress.RAMCap
	}
	if vm.Available < target {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Free memory %d MiB is below the %d MiB stress target", vm.Available>>20, target>>20),
			Suggestion: "The RAM stress test will be skipped with an error; close other applications first",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d MiB free, stress target %d MiB", vm.Available>>20, target>>20),
	}
}

// DiskCheck verifies free space on the stress volume.
type DiskCheck struct {
	Cfg *config.Config

	Stat func(path string) (*disk.UsageStat, error)
}

func (c *DiskCheck) Name() string     { return "free_disk" }
func (c *DiskCheck) Category() string { return "RESOURCES" }

func (c *DiskCheck) Run() CheckResult {
	stat := c.Stat
	if stat == nil {
		stat = disk.Usage
	}
	usage, err := stat(c.Cfg.Stress.DiskPath)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("Cannot read disk stats for %s: %v", c.Cfg.Stress.DiskPath, err),
		}
	}

	if usage.Free < c.Cfg.Stress.MinFreeDisk {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Free space %d MiB is below the %d MiB minimum", usage.Free>>20, c.Cfg.Stress.MinFreeDisk>>20),
			Suggestion: "The disk stress test will be skipped with an error; free up space first",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d MiB free on %s", usage.Free>>20, c.Cfg.Stress.DiskPath),
	}
}

// OutputDirCheck verifies the output directory exists and is writable.
type OutputDirCheck struct {
	Cfg *config.Config
}

func (c *OutputDirCheck) Name() string     { return "output_writable" }
func (c *OutputDirCheck) Category() string { return "OUTPUT" }

func (c *OutputDirCheck) Run() CheckResult {
	dir := c.Cfg.Output.Dir
	probe := filepath.Join(dir, ".hwbench-write-check")

	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot write to output directory %s: %v", dir, err),
			Suggestion: "Choose a writable directory with output.dir",
		}
	}
	os.Remove(probe)

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Output directory %s is writable", dir),
	}
}

// DefaultChecks assembles the standard check set for a config.
func DefaultChecks(cfg *config.Config) []Check {
	return []Check{
		&SystemInfoCheck{},
		&SourceCheck{Cfg: cfg},
		&MemoryCheck{Cfg: cfg},
		&DiskCheck{Cfg: cfg},
		&OutputDirCheck{Cfg: cfg},
	}
}
