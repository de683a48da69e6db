package stress

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/logger"
	"github.com/rileyhilliard/hwbench/internal/sensor"
)

// SampleFunc fetches and flattens a fresh set of sensor readings. The
// orchestrator calls it after each load phase to see how the hardware
// responded.
type SampleFunc func(ctx context.Context) ([]sensor.Reading, error)

// Orchestrator runs the four stress routines in fixed order.
type Orchestrator struct {
	cfg    *config.Config
	sample SampleFunc
	log    logger.Logger

	// Overridable for tests.
	memStat  func() (*mem.VirtualMemoryStat, error)
	diskStat func(path string) (*disk.UsageStat, error)
	numCPU   func() int
}

// NewOrchestrator creates an orchestrator backed by the OS for memory and
// disk statistics.
func NewOrchestrator(cfg *config.Config, sample SampleFunc, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Noop()
	}
	return &Orchestrator{
		cfg:      cfg,
		sample:   sample,
		log:      log,
		memStat:  mem.VirtualMemory,
		diskStat: disk.Usage,
		numCPU:   runtime.NumCPU,
	}
}

// routine is one stress test body. It returns the finished result; any
// error (or panic) is mapped to StatusError by the runner.
type routine func(ctx context.Context) (Result, error)

// Run executes the CPU, RAM, Disk, and GPU routines in that order. It
// always returns exactly four results in that order, plus the collected
// error strings (possibly empty). No routine's failure cancels another's.
func (o *Orchestrator) Run(ctx context.Context) ([]Result, []string) {
	steps := []struct {
		component Component
		fn        routine
	}{
		{CPU, o.stressCPU},
		{RAM, o.stressRAM},
		{Disk, o.stressDisk},
		{GPU, o.stressGPU},
	}

	results := make([]Result, 0, len(steps))
	var errs []string
	for _, step := range steps {
		result, err := o.runRoutine(ctx, step.component, step.fn)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s stress test failed: %v", step.component, err))
		}
		results = append(results, result)
	}
	return results, errs
}

// runRoutine wraps one routine in the catch-log-record-continue discipline:
// an error or panic becomes a StatusError result with no metric, and
// execution proceeds to the next routine.
func (o *Orchestrator) runRoutine(ctx context.Context, component Component, fn routine) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			o.log.Error("%s stress test failed: %v", component, err)
			result = Result{Component: component, Status: StatusError}
		}
	}()

	o.log.Info("starting %s stress test", component)
	result, err = fn(ctx)
	if err == nil {
		o.log.Info("%s stress test finished: %s", component, result.Status)
	}
	return result, err
}

// judge builds a result from the readings sampled after a load phase.
// No readings means the component exposes no matching sensors, which is an
// expected outcome, not an error.
func (o *Orchestrator) judge(component Component, readings []sensor.Reading, threshold float64, over Status) Result {
	max, ok := sensor.MaxValue(readings)
	if !ok {
		o.log.Warn("no %s sensor readings available", component)
		return Result{Component: component, Status: StatusUnavailable}
	}

	status := StatusOK
	if max > threshold {
		status = over
	}
	return Result{Component: component, Metric: max, HasMetric: true, Status: status}
}
