package stress

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/rileyhilliard/hwbench/internal/errors"
	"github.com/rileyhilliard/hwbench/internal/sensor"
)

const (
	// chunkSize is the allocation unit for the RAM routine.
	chunkSize = 8 << 20 // 8 MiB

	// allocPause keeps chunk allocations from saturating the allocator.
	allocPause = 10 * time.Millisecond

	// rewritePause is the gap between rewrite iterations.
	rewritePause = 100 * time.Millisecond
)

// stressRAM allocates a bounded share of physical memory in fixed chunks,
// then rewrites the first chunk with pseudo-random bytes until the deadline.
// Only one chunk is actively rewritten; the rest just occupy memory. All
// chunks are released and a collection is requested on every exit path.
func (o *Orchestrator) stressRAM(ctx context.Context) (Result, error) {
	vm, err := o.memStat()
	if err != nil {
		return Result{}, fmt.Errorf("read memory stats: %w", err)
	}

	target := uint64(float64(vm.Total) * o.cfg.Stress.RAMFraction)
	if target > o.cfg.Stress.RAMCap {
		target = o.cfg.Stress.RAMCap
	}
	if target < chunkSize {
		return Result{}, errors.New(errors.ErrResource,
			fmt.Sprintf("RAM allocation target %d bytes is below the %d byte minimum", target, chunkSize),
			"Raise stress.ram_cap or stress.ram_fraction")
	}
	if vm.Available < target {
		return Result{}, errors.New(errors.ErrResource,
			fmt.Sprintf("not enough free memory: %d MiB available, %d MiB needed", vm.Available>>20, target>>20),
			"Close other applications or lower stress.ram_fraction")
	}

	o.log.Info("RAM load: allocating %d MiB in %d MiB chunks", target>>20, chunkSize>>20)

	var chunks [][]byte
	defer func() {
		// Release everything we took, success or not, and ask the runtime
		// to give it back promptly.
		chunks = nil
		runtime.GC()
	}()

	deadline := time.Now().Add(o.cfg.Stress.RAMDuration)
	for allocated := uint64(0); allocated < target; allocated += chunkSize {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		chunks = append(chunks, make([]byte, chunkSize))
		time.Sleep(allocPause)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		rng.Read(chunks[0])
		time.Sleep(rewritePause)
	}

	readings, err := o.sample(ctx)
	if err != nil {
		return Result{}, err
	}
	return o.judge(RAM, sensor.RAMLoads(readings), o.cfg.Thresholds.RAMLoad, StatusHighUsage), nil
}
